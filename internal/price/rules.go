package price

import (
	"regexp"

	"flyerwatch/internal/domain"
)

// MultiMode decides how to assign fields when a price region yields more than
// one number. Flyer templates differ: some print the discounted price first,
// some last, some split crowns and cents into separate tokens.
type MultiMode int

const (
	// MultiStrict parses the whole cleaned string as one amount; any
	// ambiguity (extra separators, stray digits) is unparseable.
	MultiStrict MultiMode = iota
	// MultiFirst extracts numbers and uses the first one only.
	MultiFirst
	// MultiSecondInitial takes the first number as the price and the second
	// as the crossed-out initial price.
	MultiSecondInitial
	// MultiFirstInitial takes the last number as the price and the first as
	// the initial price.
	MultiFirstInitial
	// MultiMinPrice takes the smaller number as the sale price and the
	// larger as the initial price.
	MultiMinPrice
	// MultiMergeCents merges "19 90" into 19.90 when the second token is a
	// common cents value; a third number becomes the initial price.
	MultiMergeCents
	// MultiVATPair expects an ex-VAT/inc-VAT pair and keeps the second
	// number; anything else is unparseable.
	MultiVATPair
)

// Rule is the declarative parsing descriptor for one shop's flyer template.
// Adding a shop is a table entry, not new parser code.
type Rule struct {
	// WholeUnits treats a separator-less number as whole crowns; the default
	// reads the trailing two digits of a 3+ digit number as cents.
	WholeUnits bool
	// Apostrophe accepts ' as a decimal separator ("31'90").
	Apostrophe bool
	// TrailingMark accepts "24-" and "24:" as whole-crown prices.
	TrailingMark bool
	// SpaceDecimal joins "17 90" into 17.90 before extraction.
	SpaceDecimal bool
	// Strip is removed from the text before number extraction.
	Strip *regexp.Regexp
	// Skip marks the whole string unparseable (percent tags, date ranges).
	Skip *regexp.Regexp
	// Packaging is a leading packaging annotation to cut off ("2 BAL").
	Packaging *regexp.Regexp
	// SkipMultiPrices rejects strings with two decimal prices in sequence.
	SkipMultiPrices bool
	// VolumeKeywords flag quantity phrases; a trailing small integer next to
	// one of these is a purchase count, not an initial price.
	VolumeKeywords []string
	// PointsKeywords mark loyalty-point "prices" that carry no money amount.
	PointsKeywords []string
	// MinMinor rejects parses below this amount, in minor units.
	MinMinor int64
	Multi    MultiMode
}

// Table maps shop names to their parsing rules. Built once at startup and
// read-only afterwards.
type Table struct {
	rules map[string]Rule
}

// NewTable returns a Table with rules for the supported shops.
func NewTable() *Table {
	plain := Rule{}
	albert := Rule{
		Apostrophe:   true,
		TrailingMark: true,
		MinMinor:     500,
		Multi:        MultiFirst,
	}
	tesco := Rule{
		Skip:  regexp.MustCompile(`%|HOP|\d{1,2}\.\d{1,2}\.\s*-\s*\d{1,2}\.\d{1,2}\.`),
		Multi: MultiFirst,
	}
	return &Table{rules: map[string]Rule{
		"EsoMarket": plain,
		"Penny":     {Multi: MultiMergeCents},
		"Billa": {
			Multi:          MultiSecondInitial,
			VolumeKeywords: []string{"pri", "koupi", "kupte", "ks", "up te", "aza"},
			PointsKeywords: []string{"bodi", "bodu"},
		},
		"Albert Hypermarket": albert,
		"Albert Supermarket": albert,
		"Tesco Supermarket":  tesco,
		"Tesco Hypermarket":  tesco,
		"Lidl":               plain,
		"Lidl Shop":          plain,
		"Kaufland": {
			SkipMultiPrices: true,
			Multi:           MultiFirstInitial,
		},
		"Flop":     {Multi: MultiSecondInitial},
		"Flop Top": {Multi: MultiSecondInitial},
		"Travel Free": {
			Strip: regexp.MustCompile(`€`),
			Multi: MultiMinPrice,
		},
		"CBA Potraviny": plain,
		"CBA Premium":   plain,
		"CBA Market":    plain,
		"Bene":          plain,
		"Makro": {
			Packaging: regexp.MustCompile(`^\d+-?\d?\s*(BAL|ks|A VICE|AViCE)`),
			Multi:     MultiSecondInitial,
		},
		"Globus": {
			Skip:         regexp.MustCompile(`%|[^\d.,'\s-]`),
			Apostrophe:   true,
			SpaceDecimal: true,
			Multi:        MultiFirst,
		},
		"Tamda Foods": {
			Skip:  regexp.MustCompile(`%|\(`),
			Strip: regexp.MustCompile(`(?i)k[cč]+`),
			Multi: MultiFirst,
		},
		"Ratio": {
			Strip: regexp.MustCompile(`(?i)(bez|vcetne)\s*dph`),
			Multi: MultiVATPair,
		},
	}}
}

// NewTableWith builds a Table from explicit rules; used for custom shop sets.
func NewTableWith(rules map[string]Rule) *Table {
	return &Table{rules: rules}
}

// Rule returns the rule set for a shop.
func (t *Table) Rule(shop string) (Rule, error) {
	r, ok := t.rules[shop]
	if !ok {
		return Rule{}, domain.ErrUnknownShop
	}
	return r, nil
}

// Shops lists the shop names the table knows.
func (t *Table) Shops() []string {
	out := make([]string, 0, len(t.rules))
	for name := range t.rules {
		out = append(out, name)
	}
	return out
}
