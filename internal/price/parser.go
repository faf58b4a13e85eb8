package price

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"flyerwatch/internal/domain"
)

// Result carries the canonical price fields extracted from one OCR string.
// Nil means unparseable; false data is worse than missing data here.
type Result struct {
	ItemPrice        *int64
	ItemMemberPrice  *int64
	ItemInitialPrice *int64
}

// Empty reports whether nothing was parsed.
func (r Result) Empty() bool {
	return r.ItemPrice == nil && r.ItemMemberPrice == nil && r.ItemInitialPrice == nil
}

// Format renders minor units as the canonical "whole.cc" string.
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

var numberPattern = regexp.MustCompile(`\d+[.,]?\d*`)

// commonCents are the cents values shops print as a separate half-height
// token next to the crown amount.
var commonCents = map[int64]bool{90: true, 99: true}

// Parse normalizes one shop-tagged OCR price string into canonical minor
// units. The class id decides which field a lone price lands in. Unknown
// shops are a configuration error; every per-string failure is just an empty
// Result.
func (t *Table) Parse(shop string, class domain.PriceClass, text string) (Result, error) {
	rule, err := t.Rule(shop)
	if err != nil {
		return Result{}, fmt.Errorf("price.Parse %q: %w", shop, err)
	}
	if !class.IsPrice() {
		return Result{}, nil
	}
	return parse(rule, class, text), nil
}

func parse(rule Rule, class domain.PriceClass, text string) Result {
	if rule.Skip != nil && rule.Skip.MatchString(text) {
		return Result{}
	}
	lower := strings.ToLower(text)
	for _, kw := range rule.PointsKeywords {
		if strings.Contains(lower, kw) {
			return Result{} // loyalty points, not a money amount
		}
	}
	if rule.Packaging != nil {
		text = strings.TrimSpace(rule.Packaging.ReplaceAllString(text, ""))
	}
	if rule.Strip != nil {
		text = rule.Strip.ReplaceAllString(text, "")
	}
	if rule.SkipMultiPrices && multiDecimalPattern.MatchString(text) {
		return Result{}
	}
	if rule.Apostrophe {
		text = apostrophePattern.ReplaceAllString(text, "$1.$2")
	}
	if rule.TrailingMark {
		text = trailingMarkPattern.ReplaceAllString(text, "$1$2")
	}
	if rule.SpaceDecimal {
		text = spaceDecimalPattern.ReplaceAllString(text, "$1.$2")
	}

	var (
		raw     []string
		amounts []int64
	)
	if rule.Multi == MultiStrict {
		// Single-price templates parse the whole cleaned string; leftover
		// separators make it ambiguous rather than guessed at.
		clean := nonAmountPattern.ReplaceAllString(text, "")
		minor, ok := parseAmount(clean, rule)
		if !ok {
			return Result{}
		}
		raw, amounts = []string{clean}, []int64{minor}
	} else {
		raw = numberPattern.FindAllString(text, -1)
		for _, tok := range raw {
			if minor, ok := parseAmount(tok, rule); ok {
				amounts = append(amounts, minor)
			}
		}
	}
	if len(amounts) == 0 {
		return Result{}
	}

	res := assign(rule, class, raw, amounts)
	if rule.MinMinor > 0 {
		if p := res.field(class); p != nil && *p < rule.MinMinor {
			return Result{}
		}
	}
	return res
}

var (
	nonAmountPattern    = regexp.MustCompile(`[^0-9.,]`)
	multiDecimalPattern = regexp.MustCompile(`\d+[.,]\d+\s+\d+[.,]\d+`)
	apostrophePattern   = regexp.MustCompile(`(\d+)'(\d+)`)
	trailingMarkPattern = regexp.MustCompile(`(\d+)[-:](\s|$)`)
	spaceDecimalPattern = regexp.MustCompile(`(\d+)\s+(\d{2})\b`)
)

// assign distributes the extracted amounts over the price fields according
// to the rule's multi-number mode.
func assign(rule Rule, class domain.PriceClass, raw []string, amounts []int64) Result {
	var res Result
	switch {
	case len(amounts) == 1:
		res.setField(class, amounts[0])

	case rule.Multi == MultiMergeCents:
		merged, rest := mergeCents(raw, rule)
		if merged == nil {
			res.setField(class, amounts[0])
			if len(amounts) > 1 {
				res.ItemInitialPrice = ptr(amounts[1])
			}
			break
		}
		res.setField(class, *merged)
		if len(rest) > 0 {
			res.ItemInitialPrice = ptr(rest[0])
		}

	case rule.Multi == MultiSecondInitial:
		if rule.isVolume(amounts[1]) {
			res.setField(class, amounts[0])
			break
		}
		res.setField(class, amounts[0])
		res.ItemInitialPrice = ptr(amounts[1])

	case rule.Multi == MultiFirstInitial:
		res.setField(class, amounts[len(amounts)-1])
		res.ItemInitialPrice = ptr(amounts[0])

	case rule.Multi == MultiMinPrice:
		lo, hi := amounts[0], amounts[1]
		if hi < lo {
			lo, hi = hi, lo
		}
		res.setField(class, lo)
		res.ItemInitialPrice = ptr(hi)

	case rule.Multi == MultiVATPair:
		if len(amounts) == 2 {
			res.setField(class, amounts[1]) // first amount is ex-VAT
		}

	default:
		res.setField(class, amounts[0])
	}
	if class == domain.ClassItemInitialPrice {
		// a strikethrough region carries only the initial price
		res.ItemPrice = nil
	}
	return res
}

// mergeCents handles split crown/cents tokens ("19 90" → 19.90). Returns the
// merged amount and any remaining amounts, or nil when the second token is
// not a plausible cents value.
func mergeCents(raw []string, rule Rule) (*int64, []int64) {
	if len(raw) < 2 {
		return nil, nil
	}
	whole, err1 := strconv.ParseInt(raw[0], 10, 64)
	cents, err2 := strconv.ParseInt(raw[1], 10, 64)
	if err1 != nil || err2 != nil || !commonCents[cents] {
		return nil, nil
	}
	merged := whole*100 + cents
	var rest []int64
	for _, tok := range raw[2:] {
		if minor, ok := parseAmount(tok, rule); ok {
			rest = append(rest, minor)
		}
	}
	return &merged, rest
}

// isVolume reports whether a trailing small integer is a purchase count
// rather than a price.
func (r Rule) isVolume(minor int64) bool {
	return len(r.VolumeKeywords) > 0 && minor < 500 && minor%100 == 0
}

// parseAmount converts one numeric token to minor units. Exactly one decimal
// separator is allowed; a separator-less token follows the shop's
// implied-cents or whole-units convention.
func parseAmount(tok string, rule Rule) (int64, bool) {
	tok = strings.ReplaceAll(tok, ",", ".")
	switch strings.Count(tok, ".") {
	case 0:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, false
		}
		if !rule.WholeUnits && len(tok) > 2 {
			return n, true // digits read as minor units: "1290" is 12.90
		}
		return n * 100, true
	case 1:
		parts := strings.SplitN(tok, ".", 2)
		if parts[0] == "" || parts[1] == "" {
			return 0, false
		}
		whole, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return 0, false
		}
		frac := parts[1]
		if len(frac) > 2 {
			frac = frac[:2]
		}
		cents, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
		if len(frac) == 1 {
			cents *= 10
		}
		return whole*100 + cents, true
	default:
		return 0, false // ambiguous format
	}
}

func (r *Result) setField(class domain.PriceClass, minor int64) {
	switch class {
	case domain.ClassItemMemberPrice:
		r.ItemMemberPrice = ptr(minor)
	case domain.ClassItemInitialPrice:
		r.ItemInitialPrice = ptr(minor)
	default:
		r.ItemPrice = ptr(minor)
	}
}

func (r Result) field(class domain.PriceClass) *int64 {
	switch class {
	case domain.ClassItemMemberPrice:
		return r.ItemMemberPrice
	case domain.ClassItemInitialPrice:
		return r.ItemInitialPrice
	default:
		return r.ItemPrice
	}
}

func ptr(v int64) *int64 { return &v }
