package vocab

import "strings"

// confusions lists glyph pairs the OCR model keeps mixing up. Every inserted
// word is also stored under each substitution variant, pointing back at the
// canonical spelling, so a garbled token still lands on an exact trie hit.
var confusions = map[byte][]byte{
	'i': {'i', 'l', '1'},
	'l': {'i', 'l', '1'},
	'1': {'i', 'l', '1'},
	'r': {'r', 'j'},
	'j': {'r', 'j'},
	'e': {'e', 'o'},
	'o': {'e', 'o'},
}

// Variant storage grows multiplicatively with substitutable positions; past
// this many positions only the canonical spelling is inserted.
const maxVariantPositions = 8

type trieNode struct {
	children map[byte]*trieNode
	word     bool
	canon    string
}

// Trie is a prefix-tree dictionary of known valid words. Construction happens
// once at startup; after that it is read-only and safe for concurrent reads.
type Trie struct {
	root *trieNode
	size int
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: &trieNode{}}
}

// Len returns the number of distinct canonical words inserted.
func (t *Trie) Len() int { return t.size }

// Insert adds a word and its OCR-confusion variants. Insertion is idempotent;
// a variant never overrides the canonical spelling of a previously inserted
// word.
func (t *Trie) Insert(word string) {
	word = Normalize(word)
	if word == "" {
		return
	}
	if !t.insertPath(word, word) {
		return // already present as a canonical word
	}
	t.size++
	for _, v := range variants(word) {
		if v != word {
			t.insertPath(v, word)
		}
	}
}

// insertPath stores path with the given canonical word. Returns false when
// path already terminated a canonical (non-variant) word.
func (t *Trie) insertPath(path, canon string) bool {
	n := t.root
	for i := 0; i < len(path); i++ {
		c := path[i]
		if n.children == nil {
			n.children = make(map[byte]*trieNode)
		}
		child, ok := n.children[c]
		if !ok {
			child = &trieNode{}
			n.children[c] = child
		}
		n = child
	}
	if n.word && n.canon == path {
		return false
	}
	if !n.word || canon == path {
		// canonical spellings win over variants landing on the same node
		n.word = true
		n.canon = canon
	}
	return true
}

// Contains reports exact membership, case-insensitively.
func (t *Trie) Contains(word string) bool {
	n := t.walk(Normalize(word))
	return n != nil && n.word
}

// HasPrefix reports whether any vocabulary word starts with the given prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	return t.walk(Normalize(prefix)) != nil
}

// Lookup returns the canonical spelling for an exact (possibly
// glyph-confused) hit.
func (t *Trie) Lookup(word string) (string, bool) {
	n := t.walk(Normalize(word))
	if n == nil || !n.word {
		return "", false
	}
	return n.canon, true
}

func (t *Trie) walk(word string) *trieNode {
	n := t.root
	for i := 0; i < len(word); i++ {
		child, ok := n.children[word[i]]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// candidate tracks the best Nearest match found so far.
type candidate struct {
	word string
	dist int
}

// Nearest returns the vocabulary word within maxDist edits of word that best
// matches it. Ties break by smaller edit distance, then longer common prefix
// with the query, then lexicographic order. Returns false when nothing is
// within the bound.
func (t *Trie) Nearest(word string, maxDist int) (string, bool) {
	word = Normalize(word)
	if word == "" || maxDist < 0 {
		return "", false
	}
	if canon, ok := t.Lookup(word); ok {
		return canon, true
	}

	row := make([]int, len(word)+1)
	for i := range row {
		row[i] = i
	}

	best := candidate{dist: maxDist + 1}
	for c, child := range t.root.children {
		t.search(child, c, word, row, maxDist, &best)
	}
	if best.dist > maxDist {
		return "", false
	}
	return best.word, true
}

// search walks the trie computing one Levenshtein row per node, pruning any
// branch whose minimum row value already exceeds maxDist.
func (t *Trie) search(n *trieNode, c byte, word string, prevRow []int, maxDist int, best *candidate) {
	cols := len(word) + 1
	row := make([]int, cols)
	row[0] = prevRow[0] + 1

	minInRow := row[0]
	for i := 1; i < cols; i++ {
		cost := 1
		if word[i-1] == c {
			cost = 0
		}
		row[i] = min3(row[i-1]+1, prevRow[i]+1, prevRow[i-1]+cost)
		if row[i] < minInRow {
			minInRow = row[i]
		}
	}

	if n.word && row[cols-1] <= maxDist {
		better(best, candidate{word: n.canon, dist: row[cols-1]}, word)
	}
	if minInRow > maxDist {
		return
	}
	for nc, child := range n.children {
		t.search(child, nc, word, row, maxDist, best)
	}
}

// better replaces best with next when next wins the tie-break order.
func better(best *candidate, next candidate, query string) {
	if next.dist != best.dist {
		if next.dist < best.dist {
			*best = next
		}
		return
	}
	bp, np := commonPrefixLen(query, best.word), commonPrefixLen(query, next.word)
	if np != bp {
		if np > bp {
			*best = next
		}
		return
	}
	if next.word < best.word {
		*best = next
	}
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// variants expands the confusion substitutions over all applicable positions.
func variants(word string) []string {
	var positions []int
	for i := 0; i < len(word); i++ {
		if _, ok := confusions[word[i]]; ok {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 || len(positions) > maxVariantPositions {
		return []string{word}
	}

	out := []string{word}
	for _, pos := range positions {
		var next []string
		for _, w := range out {
			for _, sub := range confusions[w[pos]] {
				var b strings.Builder
				b.Grow(len(w))
				b.WriteString(w[:pos])
				b.WriteByte(sub)
				b.WriteString(w[pos+1:])
				next = appendUnique(next, b.String())
			}
		}
		out = next
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
