package emissions

import _ "embed"

// Default factor tables compiled into the binary, one per category.
// A model constructed with an empty path parses these bytes; a non-empty
// path reads the file instead.

//go:embed data/active.yaml
var defaultActiveModel []byte

//go:embed data/capacitors.yaml
var defaultCapacitorModel []byte

//go:embed data/connector.yaml
var defaultConnectorModel []byte

//go:embed data/diode.yaml
var defaultDiodeModel []byte

//go:embed data/inductor.yaml
var defaultInductorModel []byte

//go:embed data/other.yaml
var defaultOtherModel []byte

//go:embed data/pcb.yaml
var defaultPCBModel []byte

//go:embed data/resistor.yaml
var defaultResistorModel []byte

//go:embed data/switch.yaml
var defaultSwitchModel []byte

//go:embed data/carbon_intensity.yaml
var defaultIntensityTable []byte
