// Package parser turns raw detector output into a similarity in [0,1].
//
// Both parsers separate a legitimately empty result from output that breaks
// the expected shape: the former is a zero score, the latter a parsing error.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getlawrence/antiplag/internal/domain"
)

// ToolWindow is how many characters before the '%' sign are searched for
// the percentage figure.
const ToolWindow = 4

var (
	decimalToken = regexp.MustCompile(`\d+\.\d+`)
	wholeNumber  = regexp.MustCompile(`\b\d+\b`)
)

// ParseLibraryOutput reads a stringified diff record such as
// "35.42: ref __main__<1:0>, candidate __main__<1:0>". The last decimal
// token is a 0-100 percentage.
func ParseLibraryOutput(output string) (float64, error) {
	tokens := decimalToken.FindAllString(output, -1)
	if len(tokens) == 0 {
		return 0, domain.NewParsingError("no numeric token found")
	}
	value, err := strconv.ParseFloat(tokens[len(tokens)-1], 64)
	if err != nil {
		return 0, domain.NewParsingError(err.Error())
	}
	return clamp(value / 100), nil
}

// ParseToolOutput reads console text such as
// "a1.cpp consists for 62 % of b2.cpp material". Output without a '%' sign
// means the detector found nothing in common.
func ParseToolOutput(output string) (float64, error) {
	idx := strings.IndexByte(output, '%')
	if idx < 0 {
		return 0, nil
	}
	start := idx - ToolWindow
	if start < 0 {
		start = 0
	}
	window := output[start:idx]

	runs := wholeNumber.FindAllString(window, -1)
	if len(runs) == 0 {
		return 0, domain.NewParsingError(fmt.Sprintf("no percentage before '%%' in %q", window))
	}
	value, err := strconv.Atoi(runs[len(runs)-1])
	if err != nil {
		return 0, domain.NewParsingError(err.Error())
	}
	return clamp(float64(value) / 100), nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
