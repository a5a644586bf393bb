// Package bom loads bill-of-materials documents and drives the emission
// models over their lines. A document names the board parameters and the
// component population; the estimator dispatches each line to its
// category model and assembles a report.
package bom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Kind identifies the component category of a line.
type Kind string

const (
	KindActive    Kind = "active"
	KindCapacitor Kind = "capacitor"
	KindConnector Kind = "connector"
	KindDiode     Kind = "diode"
	KindInductor  Kind = "inductor"
	KindOther     Kind = "other"
	KindPCB       Kind = "pcb"
	KindResistor  Kind = "resistor"
	KindSwitch    Kind = "switch"
)

// ParseKind maps a document value onto the category set.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindActive, KindCapacitor, KindConnector, KindDiode, KindInductor,
		KindOther, KindPCB, KindResistor, KindSwitch:
		return k, true
	}
	return "", false
}

// BillOfMaterials is a parsed bill-of-materials document.
type BillOfMaterials struct {
	Name       string      `json:"name" yaml:"name"`
	Board      *Board      `json:"board,omitempty" yaml:"board,omitempty"`
	Components []Component `json:"components" yaml:"components"`
}

// Board describes the bare printed circuit board. Thickness is optional;
// when present it selects the volumetric calculation if the PCB model
// carries a carbon coefficient.
type Board struct {
	Area      string `json:"area" yaml:"area"`
	Layers    int    `json:"layers" yaml:"layers"`
	Thickness string `json:"thickness,omitempty" yaml:"thickness,omitempty"`
}

// Component is one bill-of-materials line. Type selects the category
// vocabulary entry; Package is an accepted alias consulted when Type is
// empty. Weight, Location, and the board fields apply only where the
// category consumes them.
type Component struct {
	Ref      string `json:"ref" yaml:"ref"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Package  string `json:"package,omitempty" yaml:"package,omitempty"`
	Weight   string `json:"weight,omitempty" yaml:"weight,omitempty"`
	Quantity *int   `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Auxiliary board lines (kind "pcb") carry their own geometry.
	Area      string `json:"area,omitempty" yaml:"area,omitempty"`
	Layers    int    `json:"layers,omitempty" yaml:"layers,omitempty"`
	Thickness string `json:"thickness,omitempty" yaml:"thickness,omitempty"`
}

// TypeName returns the vocabulary entry for the line: Type when set,
// else the Package alias, else empty for the category default.
func (c Component) TypeName() string {
	if c.Type != "" {
		return c.Type
	}
	return c.Package
}

// Count returns the line quantity; an absent quantity means one part.
func (c Component) Count() int {
	if c.Quantity == nil {
		return 1
	}
	return *c.Quantity
}

// Load reads a bill-of-materials document. Files with a .json extension
// decode as JSON, everything else as YAML. A component kind outside the
// modeled categories rejects the whole document.
func Load(path string) (*BillOfMaterials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bom: %w", err)
	}

	var b BillOfMaterials
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &b)
	} else {
		err = yaml.Unmarshal(data, &b)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing bom %s: %w", filepath.Base(path), err)
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *BillOfMaterials) validate() error {
	for i, c := range b.Components {
		if _, ok := ParseKind(string(c.Kind)); !ok {
			return fmt.Errorf("%w: component %d (%s) kind %q", ErrUnknownKind, i, c.Ref, c.Kind)
		}
		if c.Quantity != nil && *c.Quantity < 0 {
			return fmt.Errorf("component %d (%s): negative quantity %d", i, c.Ref, *c.Quantity)
		}
	}
	return nil
}
