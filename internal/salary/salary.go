// Package salary extracts salary figures from free text and converts
// them to EUR using fixed rates.
package salary

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Fixed conversion rates to the reference currency (EUR).
const (
	rateUSD = 0.92
	rateGBP = 1.18
)

var (
	separators = strings.NewReplacer(",", "", " ", "", "\n", "", "\r", "", "\t", "")
	usdPattern = regexp.MustCompile(`\$|usd`)
	gbpPattern = regexp.MustCompile(`£|gbp`)
	numPattern = regexp.MustCompile(`\d{2,7}`)
)

// Range holds salary bounds in EUR. Both bounds are nil when no figure
// was parsed; when exactly one figure is found Min equals Max.
type Range struct {
	Min *int
	Max *int
}

func (r Range) Empty() bool {
	return r.Min == nil && r.Max == nil
}

// Normalize parses up to two numeric tokens out of text and converts
// them with the detected currency's fixed rate. The first two tokens in
// order of appearance become (min, max) regardless of magnitude.
// Malformed or empty text yields an empty range, never an error.
func Normalize(text string) Range {
	if text == "" {
		return Range{}
	}

	clean := strings.ToLower(separators.Replace(text))

	rate := 1.0
	switch {
	case usdPattern.MatchString(clean):
		rate = rateUSD
	case gbpPattern.MatchString(clean):
		rate = rateGBP
	}

	tokens := numPattern.FindAllString(clean, -1)
	if len(tokens) == 0 {
		return Range{}
	}

	convert := func(raw string) int {
		n, _ := strconv.Atoi(raw)
		return int(math.Round(float64(n) * rate))
	}

	min := convert(tokens[0])
	max := min
	if len(tokens) >= 2 {
		max = convert(tokens[1])
	}

	return Range{Min: &min, Max: &max}
}
