package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePIDSchema = `{
  "pid": "55001",
  "beschreibung": "Neuanlage Marktlokation",
  "fields": {
    "marktlokation": {
      "source_group": "SG4.SG8",
      "segments": ["LOC"],
      "discriminator": {"segment": "LOC", "values": ["Z16"], "element": "0.0"},
      "children": {
        "netzlokation": {
          "source_group": "SG4.SG8",
          "segments": ["LOC"],
          "discriminator": {"segment": "LOC", "values": ["Z17"]}
        }
      }
    }
  }
}`

func TestDecodePIDSchema(t *testing.T) {
	s, err := DecodePIDSchema([]byte(samplePIDSchema))
	require.NoError(t, err)
	assert.Equal(t, "55001", s.PID)

	f, ok := s.Field("marktlokation")
	require.True(t, ok)
	assert.Equal(t, "SG4.SG8", f.SourceGroup)
	require.NotNil(t, f.Discriminator)
	assert.Equal(t, []string{"Z16"}, f.Discriminator.Values)

	nested, ok := s.Field("netzlokation")
	require.True(t, ok)
	assert.Equal(t, []string{"Z17"}, nested.Discriminator.Values)
}

func TestDecodePIDSchema_MissingPID(t *testing.T) {
	_, err := DecodePIDSchema([]byte(`{"fields": {}}`))
	assert.Error(t, err)
}

func TestDecodePIDSchema_Malformed(t *testing.T) {
	_, err := DecodePIDSchema([]byte(`not json`))
	assert.Error(t, err)
}
