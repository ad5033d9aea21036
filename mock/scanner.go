package mock

import "github.com/fwojciec/htmlwords"

var _ htmlwords.WordScanner = (*WordScanner)(nil)

// WordScanner is a mock implementation of htmlwords.WordScanner.
type WordScanner struct {
	HasNextFn func() (bool, error)
	NextFn    func() (string, error)
	CloseFn   func() error
}

// NewWordScanner returns a WordScanner yielding words in order.
func NewWordScanner(words ...string) *WordScanner {
	return &WordScanner{
		HasNextFn: func() (bool, error) {
			return len(words) > 0, nil
		},
		NextFn: func() (string, error) {
			if len(words) == 0 {
				return "", htmlwords.Errorf(htmlwords.EEXHAUSTED, "no more words")
			}
			w := words[0]
			words = words[1:]
			return w, nil
		},
		CloseFn: func() error {
			return nil
		},
	}
}

func (s *WordScanner) HasNext() (bool, error) {
	return s.HasNextFn()
}

func (s *WordScanner) Next() (string, error) {
	return s.NextFn()
}

func (s *WordScanner) Close() error {
	return s.CloseFn()
}

var _ htmlwords.Opener = (*Opener)(nil)

// Opener is a mock implementation of htmlwords.Opener.
type Opener struct {
	OpenFn func(path string) (htmlwords.WordScanner, error)
}

func (o *Opener) Open(path string) (htmlwords.WordScanner, error) {
	return o.OpenFn(path)
}
