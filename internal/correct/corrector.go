package correct

import (
	"strings"
	"unicode"

	"flyerwatch/internal/vocab"
)

// Corrector fixes OCR-garbled item-name tokens against a known vocabulary.
// Implementations never fail: a token with no acceptable correction comes
// back unchanged, and the output always has exactly as many tokens as the
// input.
type Corrector interface {
	Correct(tokens []string) []string
	CorrectText(text string) string
}

// Config controls the correction distance thresholds. Short words get a
// tighter bound so valid short tokens are not rewritten into unrelated
// vocabulary entries.
type Config struct {
	ShortWordLen  int // words of this length or less use ShortWordDist
	ShortWordDist int
	LongWordDist  int
}

// DefaultConfig matches the behavior the pipeline was tuned with.
func DefaultConfig() Config {
	return Config{ShortWordLen: 4, ShortWordDist: 1, LongWordDist: 2}
}

type trieCorrector struct {
	trie *vocab.Trie
	cfg  Config
}

// NewTrieCorrector returns a trie-backed Corrector.
func NewTrieCorrector(t *vocab.Trie, cfg Config) Corrector {
	if cfg.ShortWordLen == 0 {
		cfg = DefaultConfig()
	}
	return &trieCorrector{trie: t, cfg: cfg}
}

func (c *trieCorrector) Correct(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = c.correctToken(tok)
	}
	return out
}

// CorrectText corrects every whitespace-delimited token of text, preserving
// the original separators. Downstream shows this text to end users verbatim.
func (c *trieCorrector) CorrectText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	rest := text
	for rest != "" {
		cut := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
		if cut < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:cut])
		rest = rest[cut:]
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		b.WriteString(c.correctToken(rest[:end]))
		rest = rest[end:]
	}
	return b.String()
}

func (c *trieCorrector) correctToken(tok string) string {
	// Peel punctuation off the edges; it is re-attached around any
	// replacement so the visible text keeps its original shape.
	runes := []rune(tok)
	i, j := 0, len(runes)
	for i < j && !isWordRune(runes[i]) {
		i++
	}
	for j > i && !isWordRune(runes[j-1]) {
		j--
	}
	core := string(runes[i:j])
	norm := strings.TrimSpace(vocab.Normalize(core))
	if !correctable(norm) {
		return tok
	}

	replacement := ""
	if canon, ok := c.trie.Lookup(norm); ok {
		if canon == norm {
			return tok // exact vocabulary hit, keep original casing
		}
		replacement = canon // glyph-confusion variant hit
	} else {
		maxDist := c.cfg.LongWordDist
		if len(norm) <= c.cfg.ShortWordLen {
			maxDist = c.cfg.ShortWordDist
		}
		match, ok := c.trie.Nearest(norm, maxDist)
		if !ok {
			return tok
		}
		replacement = match
	}
	return string(runes[:i]) + replacement + string(runes[j:])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// correctable reports whether the token is a word candidate at all; pure
// separators, punctuation and numbers pass through unchanged.
func correctable(norm string) bool {
	for _, r := range norm {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
