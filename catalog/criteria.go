package catalog

import (
	"math"
	"strings"

	"github.com/thrustcurve/dataformat/utils"
)

// Criteria selects motors in Search. Zero fields match everything. The
// diameter is given in millimeters, the way users quote motor mounts.
type Criteria struct {
	Manufacturer string  `mapstructure:"manufacturer"`
	Designation  string  `mapstructure:"designation"`
	ImpulseClass string  `mapstructure:"impulseClass"`
	Diameter     float64 `mapstructure:"diameter"`
}

// diameterTolerance is how far, in millimeters, a motor diameter may be from
// the requested one.
const diameterTolerance = 0.5

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return c == Criteria{}
}

// Match reports whether m satisfies every set criterion. Text comparisons
// ignore case; a designation matches as a prefix, so "G80" finds "G80T-7".
func (c Criteria) Match(m Motor) bool {
	if c.Manufacturer != "" && !strings.EqualFold(c.Manufacturer, m.Manufacturer) {
		return false
	}
	if c.Designation != "" && !strings.HasPrefix(strings.ToLower(m.Designation), strings.ToLower(c.Designation)) {
		return false
	}
	if c.ImpulseClass != "" && !strings.EqualFold(c.ImpulseClass, m.ImpulseClass) {
		return false
	}
	if c.Diameter != 0 && math.Abs(m.Diameter*utils.MillimetersPerMeter-c.Diameter) > diameterTolerance {
		return false
	}
	return true
}
