package htmlwords

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Distribution maps each distinct word to the number of times it occurred.
type Distribution map[string]int

// WordCount is a single entry of a Distribution.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Add records one occurrence of word.
func (d Distribution) Add(word string) {
	d[word]++
}

// Total returns the number of occurrences across all words.
func (d Distribution) Total() int {
	var n int
	for _, c := range d {
		n += c
	}
	return n
}

// Words returns the entries ordered by descending count, ties broken by word.
func (d Distribution) Words() []WordCount {
	words := make([]WordCount, 0, len(d))
	for w, c := range d {
		words = append(words, WordCount{Word: w, Count: c})
	}
	slices.SortFunc(words, func(a, b WordCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
	return words
}

// Count drains s and returns the occurrence count of every word.
// The first scanner error aborts counting; no partial distribution is returned.
func Count(s WordScanner) (Distribution, error) {
	dist := make(Distribution)
	for {
		ok, err := s.HasNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			return dist, nil
		}

		word, err := s.Next()
		if err != nil {
			return nil, err
		}
		dist.Add(word)
	}
}

// FormatDistribution renders one "<word> - <count>" line per distinct word.
func FormatDistribution(d Distribution) string {
	var b strings.Builder
	for _, wc := range d.Words() {
		fmt.Fprintf(&b, "%s - %d\n", wc.Word, wc.Count)
	}
	return b.String()
}
