package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"flyerwatch/internal/domain"
)

// LoadFile builds a Trie from a plain-text vocabulary file, one or more item
// names per line. Names are normalized and split into individual words before
// insertion. An empty vocabulary is a configuration error and halts startup.
func LoadFile(path string) (*Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab.LoadFile: %w", err)
	}
	defer func() { _ = f.Close() }()

	t := NewTrie()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, word := range strings.Fields(Normalize(scanner.Text())) {
			t.Insert(word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocab.LoadFile: %w", err)
	}
	if t.Len() == 0 {
		return nil, domain.ErrEmptyVocabulary
	}
	return t, nil
}

// FromWords builds a Trie from an in-memory word list.
func FromWords(words []string) (*Trie, error) {
	t := NewTrie()
	for _, w := range words {
		for _, word := range strings.Fields(Normalize(w)) {
			t.Insert(word)
		}
	}
	if t.Len() == 0 {
		return nil, domain.ErrEmptyVocabulary
	}
	return t, nil
}
