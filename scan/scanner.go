// Package scan extracts the words of an HTML document body.
//
// Everything up to and including the last opening body tag is skipped.
// Script elements, tags and a fixed set of punctuation and whitespace
// characters delimit words. Closing body tags are not delimiters: a word
// equal to "</body>" (ignoring ASCII case) ends the scan, so the tag must be
// separated from neighbouring text by a delimiter to be recognized.
package scan

import (
	"io"
	"os"
	"strings"

	"github.com/fwojciec/htmlwords"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	bodyTag  = "<body"
	stopTag  = "</body>"
	script   = "script"
	endBody  = "/body"
	endBlock = "/script"

	// punctuation lists the single-character delimiters.
	punctuation = " ,.!?\";:[]()\n\r\t"
)

// Ensure Scanner implements htmlwords.WordScanner at compile time.
var _ htmlwords.WordScanner = (*Scanner)(nil)

// Scanner yields the words of a single document body.
// A Scanner is not safe for concurrent use.
type Scanner struct {
	name   string
	src    string
	pos    int
	next   string // empty iff no words remain
	closed bool

	// Position of the first '>' at or after gtFrom, -1 if there is none.
	gt       int
	gtFrom   int
	gtCached bool
}

// Open reads the document at path and positions a Scanner at its first body
// word. The file is closed before Open returns.
func Open(path string) (*Scanner, error) {
	if path == "" {
		return nil, htmlwords.Errorf(htmlwords.EMALFORMED, "document path required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, htmlwords.Errorf(htmlwords.EIO, "open %s: %v", path, err)
	}
	defer f.Close()

	return newScanner(path, f)
}

// NewScanner reads r to the end and positions a Scanner at the first body
// word. The caller keeps ownership of r.
func NewScanner(r io.Reader) (*Scanner, error) {
	return newScanner("document", r)
}

func newScanner(name string, r io.Reader) (*Scanner, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, htmlwords.Errorf(htmlwords.EIO, "read %s: %v", name, err)
	}
	src, err := decode(raw)
	if err != nil {
		return nil, htmlwords.Errorf(htmlwords.EMALFORMED, "decode %s: %v", name, err)
	}

	// The opening tag can only be located once the whole document is known.
	start, ok := skipToBody(src)
	if !ok {
		return nil, htmlwords.Errorf(htmlwords.EMALFORMED, "%s has no opening body tag", name)
	}

	s := &Scanner{name: name, src: src, pos: start}
	s.advance()
	return s, nil
}

// decode validates raw as UTF-8 and drops a leading byte order mark.
func decode(raw []byte) (string, error) {
	t := transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	b, _, err := transform.Bytes(t, raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// skipToBody returns the offset just past the last "<body" that is followed
// by a '>', ending at the first '>' after it.
func skipToBody(src string) (int, bool) {
	last := strings.LastIndexByte(src, '>')
	if last < 0 {
		return 0, false
	}
	i := lastIndexFold(src[:last], bodyTag)
	if i < 0 {
		return 0, false
	}
	end := i + len(bodyTag)
	return end + strings.IndexByte(src[end:], '>') + 1, true
}

// HasNext reports whether another word is available.
func (s *Scanner) HasNext() (bool, error) {
	if s.closed {
		return false, htmlwords.Errorf(htmlwords.ECLOSED, "scanner for %s is closed", s.name)
	}
	return s.next != "", nil
}

// Next returns the next word and looks ahead for the one after it.
func (s *Scanner) Next() (string, error) {
	ok, err := s.HasNext()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", htmlwords.Errorf(htmlwords.EEXHAUSTED, "end of %s or %s reached", s.name, stopTag)
	}

	word := s.next
	s.advance()
	return word, nil
}

// Close marks the scanner closed and drops the document text.
func (s *Scanner) Close() error {
	s.closed = true
	s.src = ""
	s.pos = 0
	s.next = ""
	return nil
}

// advance buffers the next word, or nothing once the input is exhausted or
// the stop tag was reached.
func (s *Scanner) advance() {
	s.next = ""
	for {
		word, ok := s.chunk()
		if !ok {
			return
		}
		if word == "" {
			continue
		}
		if equalFold(word, stopTag) {
			s.pos = len(s.src)
			return
		}
		s.next = word
		return
	}
}

// chunk returns the text before the next delimiter and moves past that
// delimiter. ok is false once the input is exhausted.
func (s *Scanner) chunk() (word string, ok bool) {
	if s.pos >= len(s.src) {
		return "", false
	}

	start := s.pos
	for i := start; i < len(s.src); i++ {
		if end := s.delimiterAt(i); end >= 0 {
			s.pos = end
			return s.src[start:i], true
		}
	}

	s.pos = len(s.src)
	return s.src[start:], true
}

// delimiterAt returns the end of the delimiter starting at i, or -1.
// Script elements take precedence over tags, tags over punctuation.
func (s *Scanner) delimiterAt(i int) int {
	c := s.src[i]
	if c == '<' {
		if end := s.scriptAt(i); end >= 0 {
			return end
		}
		return s.tagAt(i)
	}
	if strings.IndexByte(punctuation, c) >= 0 {
		return i + 1
	}
	return -1
}

// scriptAt matches the shortest script element starting at i.
func (s *Scanner) scriptAt(i int) int {
	j := skipSpace(s.src, i+1)
	if !hasPrefixFold(s.src[j:], script) {
		return -1
	}
	open := s.indexGT(j + len(script))
	if open < 0 {
		return -1
	}

	for k := open + 1; ; {
		m := strings.IndexByte(s.src[k:], '<')
		if m < 0 {
			return -1
		}
		m += k

		n := skipSpace(s.src, m+1)
		if hasPrefixFold(s.src[n:], endBlock) {
			end := s.indexGT(n + len(endBlock))
			if end < 0 {
				return -1
			}
			return end + 1
		}
		k = m + 1
	}
}

// tagAt matches the tag starting at i unless it looks like a closing body tag.
func (s *Scanner) tagAt(i int) int {
	if hasPrefixFold(s.src[skipSpace(s.src, i+1):], endBody) {
		return -1
	}
	end := s.indexGT(i + 1)
	if end < 0 {
		return -1
	}
	return end + 1
}

// indexGT returns the position of the first '>' at or after i, or -1.
func (s *Scanner) indexGT(i int) int {
	if !s.gtCached || i < s.gtFrom || (s.gt >= 0 && i > s.gt) {
		s.gtFrom = i
		s.gt = strings.IndexByte(s.src[i:], '>')
		if s.gt >= 0 {
			s.gt += i
		}
		s.gtCached = true
	}
	return s.gt
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// hasPrefixFold reports whether s begins with the lower-case ASCII prefix,
// ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if toLower(s[i]) != prefix[i] {
			return false
		}
	}
	return true
}

func equalFold(s, lower string) bool {
	return len(s) == len(lower) && hasPrefixFold(s, lower)
}

func lastIndexFold(s, substr string) int {
	for i := len(s) - len(substr); i >= 0; i-- {
		if hasPrefixFold(s[i:], substr) {
			return i
		}
	}
	return -1
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
