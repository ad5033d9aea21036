package scan

import "github.com/fwojciec/htmlwords"

// Ensure Opener implements htmlwords.Opener at compile time.
var _ htmlwords.Opener = (*Opener)(nil)

// Opener opens local documents as Scanners.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open reads the document at path. See Open.
func (o *Opener) Open(path string) (htmlwords.WordScanner, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
