package vocab

import "strings"

// czechToASCII maps Czech diacritics to their plain ASCII equivalents so that
// vocabulary lookups survive the OCR stage, which rarely preserves diacritics.
var czechToASCII = map[rune]rune{
	'á': 'a', 'č': 'c', 'ç': 'c', 'ď': 'd', 'é': 'e', 'ě': 'e',
	'í': 'i', 'ň': 'n', 'ó': 'o', 'ř': 'r', 'š': 's', 'ť': 't',
	'ú': 'u', 'ů': 'u', 'ý': 'y', 'ž': 'z',
	'Á': 'A', 'Č': 'C', 'Ď': 'D', 'É': 'E', 'Ě': 'E',
	'Í': 'I', 'Ň': 'N', 'Ó': 'O', 'Ř': 'R', 'Š': 'S', 'Ť': 'T',
	'Ú': 'U', 'Ů': 'U', 'Ý': 'Y', 'Ž': 'Z',
}

// Normalize lowercases text, strips tabs, newlines and pipes, transliterates
// Czech diacritics and replaces any remaining non-ASCII rune with a space.
func Normalize(text string) string {
	text = strings.NewReplacer("\t", "", "\n", "", " ", " ", "|", "").Replace(text)
	text = strings.TrimSpace(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if m, ok := czechToASCII[r]; ok {
			b.WriteRune(m)
			continue
		}
		if r > 0x7f {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
