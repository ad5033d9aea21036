// Package htmlwords counts the words in the body of HTML documents.
// It scans local documents, or downloads them first, strips markup,
// script blocks and punctuation, and reports how often each word occurs.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, rod/, scan/).
package htmlwords
