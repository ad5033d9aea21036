package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlwords"
)

// Ensure LoggingOpener implements htmlwords.Opener.
var _ htmlwords.Opener = (*LoggingOpener)(nil)

// LoggingOpener wraps an Opener with logging. Scanners it returns log the
// number of words read when closed.
type LoggingOpener struct {
	next   htmlwords.Opener
	logger *slog.Logger
}

// NewLoggingOpener creates a new LoggingOpener.
func NewLoggingOpener(next htmlwords.Opener, logger *slog.Logger) *LoggingOpener {
	return &LoggingOpener{next: next, logger: logger}
}

// Open logs the document path and delegates to the wrapped opener.
func (o *LoggingOpener) Open(path string) (s htmlwords.WordScanner, err error) {
	defer func(begin time.Time) {
		o.logger.Info("open",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	s, err = o.next.Open(path)
	if err != nil {
		return nil, err
	}
	return &loggingScanner{next: s, path: path, logger: o.logger, begin: time.Now()}, nil
}

type loggingScanner struct {
	next   htmlwords.WordScanner
	path   string
	logger *slog.Logger
	begin  time.Time
	words  int
}

func (s *loggingScanner) HasNext() (bool, error) {
	return s.next.HasNext()
}

func (s *loggingScanner) Next() (string, error) {
	word, err := s.next.Next()
	if err == nil {
		s.words++
	}
	return word, err
}

func (s *loggingScanner) Close() (err error) {
	defer func() {
		s.logger.Info("scan",
			"path", s.path,
			"words", s.words,
			"duration", time.Since(s.begin),
			"err", err,
		)
	}()
	return s.next.Close()
}
