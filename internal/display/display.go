// Package display formats price values for presentation.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Direction classifies a price delta for presentation.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// PriceLabel formats a USD amount without a sign prefix, e.g. "$42,000.50".
func PriceLabel(value float64) string {
	return "$" + group(math.Abs(value))
}

// DeltaLabel formats a price change with an explicit sign prefix,
// e.g. "+$123.45" or "-$123.45".
func DeltaLabel(value float64) string {
	sign := "+"
	if value < 0 {
		sign = "-"
	}
	return sign + "$" + group(math.Abs(value))
}

// DeltaDirection classifies a price change.
func DeltaDirection(value float64) Direction {
	switch {
	case value > 0:
		return DirectionUp
	case value < 0:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

// group renders a non-negative amount with two decimals and thousands
// separators.
func group(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return fmt.Sprintf("%s%s", b.String(), fracPart)
}
