package dataformat

import (
	"fmt"
	"strings"

	"github.com/thrustcurve/dataformat/catalog"
	"github.com/thrustcurve/dataformat/formatter"
)

// Document roots
const (
	RootMetadata = "metadata-response"
	RootSearch   = "search-response"
	RootMotor    = "motor-info"
	RootError    = "error-response"
)

// WriteMetadata writes the catalog summary: the values a client offers as
// search choices.
func WriteMetadata(w formatter.Writer, c *catalog.Catalog) error {
	if err := w.DeclareRoot(RootMetadata); err != nil {
		return err
	}
	w.WriteElement("motor-count", c.Len())
	w.WriteElementList("manufacturers", c.Manufacturers())
	w.WriteElementList("impulse-classes", c.ImpulseClasses())
	w.WriteLengthList("diameters", c.Diameters())
	return nil
}

// WriteSearch writes the criteria echo and the identifiers of the matching
// motors.
func WriteSearch(w formatter.Writer, crit catalog.Criteria, matches []catalog.Motor) error {
	if err := w.DeclareRoot(RootSearch); err != nil {
		return err
	}
	w.WriteElement("criteria", formatter.Fields{
		{Name: "summary", Value: criteriaSummary(crit)},
		{Name: "manufacturer", Value: optional(crit.Manufacturer)},
		{Name: "designation", Value: optional(crit.Designation)},
		{Name: "impulseClass", Value: optional(crit.ImpulseClass)},
		{Name: "diameter", Value: optionalNumber(crit.Diameter)},
	})
	w.WriteElement("matches", len(matches))

	ids := make([]string, len(matches))
	designations := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
		designations[i] = m.Designation
	}
	w.WriteIDList("motor-ids", ids)
	w.WriteElementList("designations", designations)
	return nil
}

// WriteMotor writes every field of one motor.
func WriteMotor(w formatter.Writer, m catalog.Motor) error {
	if err := w.DeclareRoot(RootMotor); err != nil {
		return err
	}
	w.WriteID("motor-id", m.ID)
	w.WriteElement("manufacturer", m.Manufacturer)
	w.WriteElement("designation", m.Designation)
	w.WriteElement("common-name", optional(m.CommonName))
	w.WriteElement("impulse-class", m.ImpulseClass)
	w.WriteElement("type", optional(m.Type))
	w.WriteElement("diameter", m.Diameter)
	w.WriteElement("length", optionalNumber(m.Length))
	w.WriteElement("total-impulse", optionalNumber(m.TotalImpulse))
	w.WriteElement("avg-thrust", optionalNumber(m.AvgThrust))
	w.WriteElement("burn-time", optionalNumber(m.BurnTime))
	w.WriteElementList("delays", m.Delays)
	w.WriteElement("certified", m.Certified)
	w.WriteElement("updated-on", m.UpdatedOn)
	return nil
}

// WriteError writes an error document.
func WriteError(w formatter.Writer, msg string) error {
	if err := w.DeclareRoot(RootError); err != nil {
		return err
	}
	w.WriteElement("error", msg)
	return nil
}

func criteriaSummary(crit catalog.Criteria) string {
	var parts []string
	if crit.Manufacturer != "" {
		parts = append(parts, "manufacturer="+crit.Manufacturer)
	}
	if crit.Designation != "" {
		parts = append(parts, "designation="+crit.Designation)
	}
	if crit.ImpulseClass != "" {
		parts = append(parts, "impulseClass="+crit.ImpulseClass)
	}
	if crit.Diameter != 0 {
		parts = append(parts, fmt.Sprintf("diameter=%gmm", crit.Diameter))
	}
	return strings.Join(parts, " ")
}

// optional maps the empty string to an absent value.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalNumber(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
