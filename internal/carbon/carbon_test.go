package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/boardcarbon/internal/units"
)

// TestSourceType_String verifies every source category has a stable
// reporting label.
func TestSourceType_String(t *testing.T) {
	tests := []struct {
		source SourceType
		want   string
	}{
		{SourceFabrication, "fabrication"},
		{SourceActive, "active"},
		{SourcePassives, "passives"},
		{SourceConnector, "connector"},
		{SourceInductor, "inductor"},
		{SourceSwitch, "switch"},
		{SourceOther, "other"},
		{SourceType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.source.String())
		})
	}
}

// TestCarbon_String verifies the combined quantity and source rendering.
func TestCarbon_String(t *testing.T) {
	c := New(units.MustParse("0.001876 kg"), SourceActive)
	assert.Equal(t, "0.001876 kg (active)", c.String())
}
