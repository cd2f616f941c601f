package catalog

import (
	"strings"
	"time"

	"github.com/thrustcurve/dataformat/utils"
)

// Motor describes one rocket motor. Lengths are in meters, impulse in
// newton-seconds, thrust in newtons and times in seconds.
type Motor struct {
	ID           string     `yaml:"id"`
	Manufacturer string     `yaml:"manufacturer" validate:"required"`
	Designation  string     `yaml:"designation" validate:"required"`
	CommonName   string     `yaml:"commonName"`
	ImpulseClass string     `yaml:"impulseClass" validate:"required,max=4"`
	Type         string     `yaml:"type" validate:"omitempty,oneof=SU reload hybrid"`
	Diameter     float64    `yaml:"diameter" validate:"gt=0"`
	Length       float64    `yaml:"length" validate:"gte=0"`
	TotalImpulse float64    `yaml:"totalImpulse" validate:"gte=0"`
	AvgThrust    float64    `yaml:"avgThrust" validate:"gte=0"`
	BurnTime     float64    `yaml:"burnTime" validate:"gte=0"`
	Delays       []string   `yaml:"delays" validate:"dive,required"`
	Certified    bool       `yaml:"certified"`
	UpdatedOn    *time.Time `yaml:"updatedOn"`
}

// Name returns the manufacturer and designation, the name a motor is usually
// referred to by.
func (m Motor) Name() string {
	return m.Manufacturer + " " + m.Designation
}

// compareMotors orders motors by manufacturer, then designation.
func compareMotors(a, b Motor) int {
	if c := utils.NameCompare(a.Manufacturer, b.Manufacturer); c != 0 {
		return c
	}
	if c := utils.NameCompare(a.Designation, b.Designation); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
