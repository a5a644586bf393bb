package emissions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// ConnectorType identifies a connector type in the model-file vocabulary,
// based on Ecoinvent 3.11 activities.
type ConnectorType string

const (
	// ConnectorPCI is a Peripheral Component Interconnect bus connector.
	ConnectorPCI ConnectorType = "pci"

	// ConnectorPeripheral is a peripheral-type bus connector; it is the
	// substitution target for unresolved connector types.
	ConnectorPeripheral ConnectorType = "peripheral"
)

// ParseConnectorType maps a model-file key onto the connector vocabulary.
func ParseConnectorType(s string) (ConnectorType, bool) {
	switch t := ConnectorType(s); t {
	case ConnectorPCI, ConnectorPeripheral:
		return t, true
	}
	return "", false
}

// ConnectorModel estimates emissions for board connectors from
// mass-normalized factors: 112 kg CO2e/kg for PCI bus connectors and
// 9.38 kg CO2e/kg for peripheral-type bus connectors in the default
// table.
type ConnectorModel struct {
	factors *factorTable[ConnectorType]
}

// NewConnectorModel loads the connector factor table from path, or from
// the embedded default table when path is empty. Both named factors are
// required; construction fails when either is absent.
func NewConnectorModel(path string, logger zerolog.Logger) (*ConnectorModel, error) {
	doc, err := loadDocument(path, defaultConnectorModel)
	if err != nil {
		return nil, fmt.Errorf("connector model: %w", err)
	}

	factors, err := newFactorTable(doc.Pairs(), vocabulary[ConnectorType]{
		category: "connector",
		parse:    ParseConnectorType,
		required: []ConnectorType{ConnectorPeripheral, ConnectorPCI},
		fallback: ConnectorPeripheral,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &ConnectorModel{factors: factors}, nil
}

// GetCarbon computes weight × factor × n for n connectors of the given
// type. weight is the mass of a single connector and must be a mass
// quantity; an empty or unresolved type uses the peripheral factor.
func (m *ConnectorModel) GetCarbon(weight units.Quantity, typ ConnectorType, n int) (carbon.Carbon, error) {
	if typ == "" {
		typ = ConnectorPeripheral
	}
	return m.factors.massCarbon(weight, typ, n, carbon.SourceConnector)
}
