package utils

import (
	"math"
	"strconv"
	"strings"
)

// MillimetersPerMeter converts the SI lengths stored in the catalog to the
// millimetre figures published by the API.
const MillimetersPerMeter = 1000.0

// PresentableLength formats a length in meters as millimetres rounded to one
// decimal place, without a trailing ".0": 0.0183 gives "18.3" and 0.020 gives
// "20". The boolean is false for NaN and infinite input.
func PresentableLength(meters float64) (string, bool) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) {
		return "", false
	}
	s := strconv.FormatFloat(meters*MillimetersPerMeter, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		s = "0"
	}
	return s, true
}
