package htmlwords

// WordScanner yields the words of an HTML document body in document order.
// The sequence is finite and cannot be restarted.
type WordScanner interface {
	// HasNext reports whether another word is available.
	// Returns ECLOSED if the scanner has been closed.
	HasNext() (bool, error)

	// Next returns the next word.
	// Returns EEXHAUSTED if no word is available and ECLOSED if the
	// scanner has been closed.
	Next() (string, error)

	// Close releases the underlying document. Calling Close more than
	// once is allowed.
	Close() error
}

// Opener opens local HTML documents for scanning.
type Opener interface {
	// Open prepares a scanner positioned at the first body word of the
	// document at path. Returns EIO if the document cannot be read and
	// EMALFORMED if it is not valid UTF-8 or has no opening body tag.
	Open(path string) (WordScanner, error)
}
