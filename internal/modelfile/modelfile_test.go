package modelfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_OrderAndKeys verifies entries keep document order and that
// bare integer keys keep their literal text.
func TestParse_OrderAndKeys(t *testing.T) {
	doc, err := Parse([]byte(`
"0603": 0.00012 kg
2: 2.28 kg/m2
weight_based: 7.97 kg/kg
cpla: 1.14 kg/m2
`))
	require.NoError(t, err)
	require.Equal(t, 4, doc.Len())

	var keys []string
	for _, p := range doc.Pairs() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"0603", "2", "weight_based", "cpla"}, keys)

	got, ok := doc.Scalar("2")
	require.True(t, ok)
	assert.Equal(t, "2.28 kg/m2", got)
}

// TestParse_NestedMapping verifies one level of nesting is exposed as a
// sub-document, as used by the PCB typical_thickness table.
func TestParse_NestedMapping(t *testing.T) {
	doc, err := Parse([]byte(`
4: 4.56 kg/m2
typical_thickness:
  4: 1.6 mm
  8: 2.0 mm
carbon_coefficient: 0.00000045 kg/mm3
`))
	require.NoError(t, err)

	sub, ok := doc.Nested("typical_thickness")
	require.True(t, ok)
	require.Equal(t, 2, sub.Len())

	thick, ok := sub.Scalar("8")
	require.True(t, ok)
	assert.Equal(t, "2.0 mm", thick)

	// A scalar entry is not a nested mapping and vice versa.
	_, ok = doc.Nested("carbon_coefficient")
	assert.False(t, ok)
	_, ok = doc.Scalar("typical_thickness")
	assert.False(t, ok)
}

// TestParse_EmptyDocuments verifies empty and null input parse to an
// empty document rather than failing.
func TestParse_EmptyDocuments(t *testing.T) {
	for _, input := range []string{"", "---\n", "null\n", "# only a comment\n"} {
		doc, err := Parse([]byte(input))
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, 0, doc.Len(), "input %q", input)
	}
}

// TestParse_Invalid verifies structurally unusable documents fail.
func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"top-level sequence", "- a\n- b\n"},
		{"sequence value", "pci:\n  - 1\n  - 2\n"},
		{"top-level scalar", "just a string\n"},
		{"broken yaml", "a: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

// TestLoad verifies path-based loading and the missing-file error.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connector.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pci: 112 kg/kg\nperipheral: 9.38 kg/kg\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	got, ok := doc.Scalar("pci")
	require.True(t, ok)
	assert.Equal(t, "112 kg/kg", got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
