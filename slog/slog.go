// Package slog provides decorators that log htmlwords operations with
// log/slog.
package slog
