// Package catalog reads the berth catalog file used to seed a fresh deployment.
package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"portcall/pkg/model"
)

const DefaultPath = "configs/berths.yaml"

// BerthEntry is one berth as written in the catalog file.
type BerthEntry struct {
	Name            string  `yaml:"name"`
	CargoCategory   string  `yaml:"cargo_category"`
	MaxLength       float64 `yaml:"max_length"`
	MaxDepth        float64 `yaml:"max_depth"`
	MaxBeam         float64 `yaml:"max_beam"`
	MaxDisplacement float64 `yaml:"max_displacement"`
}

type Catalog struct {
	Berths []BerthEntry `yaml:"berths"`
}

// Load reads and validates the catalog at path, or DefaultPath when empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read berth catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parse berth catalog: empty document")
		}
		return nil, fmt.Errorf("parse berth catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate berth catalog: %w", err)
	}
	return &c, nil
}

// Validate checks structure only; field rules are enforced by the service.
func (c *Catalog) Validate() error {
	if len(c.Berths) == 0 {
		return fmt.Errorf("no berths defined")
	}

	seen := make(map[string]struct{}, len(c.Berths))
	for i, b := range c.Berths {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return fmt.Errorf("berth #%d: name is required", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("berth %q defined more than once", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Models converts the entries into berths with empty schedules.
func (c *Catalog) Models() []*model.Berth {
	berths := make([]*model.Berth, 0, len(c.Berths))
	for _, b := range c.Berths {
		berths = append(berths, &model.Berth{
			Name:            b.Name,
			CargoCategory:   b.CargoCategory,
			MaxLength:       b.MaxLength,
			MaxDepth:        b.MaxDepth,
			MaxBeam:         b.MaxBeam,
			MaxDisplacement: b.MaxDisplacement,
			BookedPeriods:   map[string]model.Period{},
		})
	}
	return berths
}

// Drift lists the capacity fields where a stored berth differs from its
// catalog entry. Booked periods are not compared.
func Drift(want, got *model.Berth) []string {
	var fields []string
	if !strings.EqualFold(strings.TrimSpace(want.CargoCategory), strings.TrimSpace(got.CargoCategory)) {
		fields = append(fields, "cargo_category")
	}
	if want.MaxLength != got.MaxLength {
		fields = append(fields, "max_length")
	}
	if want.MaxDepth != got.MaxDepth {
		fields = append(fields, "max_depth")
	}
	if want.MaxBeam != got.MaxBeam {
		fields = append(fields, "max_beam")
	}
	if want.MaxDisplacement != got.MaxDisplacement {
		fields = append(fields, "max_displacement")
	}
	return fields
}
