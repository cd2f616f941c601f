package catalog

import (
	"os"
	"slices"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-playground/validator/v10"
	"github.com/rs/xid"
	"github.com/thrustcurve/dataformat/internal"
	"github.com/thrustcurve/dataformat/utils"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, ordered set of motors.
type Catalog struct {
	motors []Motor
	byID   map[string]int
}

type file struct {
	Motors []Motor `yaml:"motors" validate:"dive"`
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read catalog: %v", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, xerrors.Errorf("catalog %s: %v", path, err)
	}

	internal.Logger.Info().
		Str("path", path).
		Int("motors", c.Len()).
		Int("manufacturers", len(c.Manufacturers())).
		Msg("catalog loaded")

	return c, nil
}

// Parse decodes a YAML catalog document of the form
//
//	motors:
//	  - manufacturer: Aerotech
//	    designation: G80T-7
//	    ...
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, xerrors.Errorf("failed to decode catalog: %v", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, xerrors.Errorf("invalid motor: %v", err)
	}
	return New(f.Motors)
}

// New builds a catalog from motors. Motors without an identifier are given a
// generated one. Duplicate identifiers are rejected.
func New(motors []Motor) (*Catalog, error) {
	c := &Catalog{
		motors: make([]Motor, len(motors)),
		byID:   make(map[string]int, len(motors)),
	}
	copy(c.motors, motors)

	for i := range c.motors {
		if c.motors[i].ID == "" {
			c.motors[i].ID = xid.New().String()
		}
	}
	slices.SortFunc(c.motors, compareMotors)

	for i, m := range c.motors {
		if _, dup := c.byID[m.ID]; dup {
			return nil, xerrors.Errorf("duplicate motor id %q (%s)", m.ID, m.Name())
		}
		c.byID[m.ID] = i
	}
	return c, nil
}

// Len returns the number of motors.
func (c *Catalog) Len() int {
	return len(c.motors)
}

// All returns every motor in catalog order.
func (c *Catalog) All() []Motor {
	return slices.Clone(c.motors)
}

// Get returns the motor with the given identifier.
func (c *Catalog) Get(id string) (Motor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Motor{}, false
	}
	return c.motors[i], true
}

// Search returns the motors matching crit in catalog order.
func (c *Catalog) Search(crit Criteria) []Motor {
	var out []Motor
	for _, m := range c.motors {
		if crit.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Manufacturers returns the distinct manufacturer names in natural order.
func (c *Catalog) Manufacturers() []string {
	return distinct(c.motors, func(m Motor) string { return m.Manufacturer }, utils.NameCompare)
}

// ImpulseClasses returns the distinct impulse classes in natural order.
func (c *Catalog) ImpulseClasses() []string {
	return distinct(c.motors, func(m Motor) string { return m.ImpulseClass }, utils.NameCompare)
}

// Diameters returns the distinct motor diameters in meters, ascending.
func (c *Catalog) Diameters() []float64 {
	set := mapset.NewThreadUnsafeSet[float64]()
	for _, m := range c.motors {
		set.Add(m.Diameter)
	}
	out := set.ToSlice()
	sort.Float64s(out)
	return out
}

func distinct(motors []Motor, key func(Motor) string, cmp func(a, b string) int) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, m := range motors {
		if k := key(m); k != "" {
			set.Add(k)
		}
	}
	out := set.ToSlice()
	slices.SortFunc(out, cmp)
	return out
}
