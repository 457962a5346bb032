package edifix

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/mapping"
	"github.com/edifix/edifix/tokenize"
)

const bgmTOML = `
[meta]
entity = "Dokument"
bo4e_type = "dokument"

[fields]
"BGM.1.0" = "dokumentennummer"
`

func sampleInterchange(ref string) []byte {
	return []byte("UNB+UNOC:3+9900123:500+9900456:500+250101:0800+" + ref + "'" +
		"UNH+1+UTILMD:D:11A:UN:5.2e'" +
		"BGM+E03+" + ref + "'" +
		"UNT+3+1'" +
		"UNZ+1+" + ref + "'")
}

func mustDefs(t *testing.T) []*mapping.Definition {
	t.Helper()
	def, err := mapping.DecodeDefinition([]byte(bgmTOML))
	require.NoError(t, err)
	return []*mapping.Definition{def}
}

func TestProcessInterchanges_MapsEachJobIndependently(t *testing.T) {
	defs := mustDefs(t)
	grammar := assemble.Grammar{RootTags: []string{"BGM"}}

	jobs := []Job{
		{Data: sampleInterchange("REF1"), Grammar: grammar, MessageDefinitions: defs},
		{Data: sampleInterchange("REF2"), Grammar: grammar, MessageDefinitions: defs},
		{Data: sampleInterchange("REF3"), Grammar: grammar, MessageDefinitions: defs},
	}

	results, err := ProcessInterchanges(context.Background(), jobs, nil, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, want := range []string{"REF1", "REF2", "REF3"} {
		r := results[i]
		require.NoError(t, r.Err)
		require.NotNil(t, r.Interchange)
		doc, ok := r.Interchange.Message["Dokument"].(mapping.BO4E)
		require.True(t, ok)
		assert.Equal(t, want, doc["dokumentennummer"])
	}
}

func TestProcessInterchanges_RecordsPerJobTokenizeError(t *testing.T) {
	jobs := []Job{
		{Data: []byte("not an interchange"), Grammar: assemble.Grammar{}},
	}

	results, err := ProcessInterchanges(context.Background(), jobs, nil, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Nil(t, results[0].Interchange)
}

func TestProcessInterchanges_DefaultWorkerCount(t *testing.T) {
	defs := mustDefs(t)
	grammar := assemble.Grammar{RootTags: []string{"BGM"}}
	jobs := []Job{{Data: sampleInterchange("ONLY"), Grammar: grammar, MessageDefinitions: defs}}

	results, err := ProcessInterchanges(context.Background(), jobs, nil, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
}

func TestProcessInterchanges_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{Data: sampleInterchange("X"), Grammar: assemble.Grammar{RootTags: []string{"BGM"}}}}

	_, err := ProcessInterchanges(ctx, jobs, nil, 1, tokenize.WithAllowEmptySegments(false))
	assert.Error(t, err)
}
