package edifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_TagOnly(t *testing.T) {
	p, err := ParsePath("NAD")
	require.NoError(t, err)
	assert.Equal(t, "NAD", p.Tag)
	assert.False(t, p.HasQualifier)
	assert.Equal(t, -1, p.ElementIdx)
	assert.Equal(t, -1, p.ComponentIdx)
}

func TestParsePath_Qualifier(t *testing.T) {
	p, err := ParsePath("NAD[MS]")
	require.NoError(t, err)
	assert.Equal(t, "NAD", p.Tag)
	assert.True(t, p.HasQualifier)
	assert.Equal(t, "MS", p.Qualifier)
}

func TestParsePath_QualifierAndIndices(t *testing.T) {
	p, err := ParsePath("NAD[MS].1.2")
	require.NoError(t, err)
	assert.Equal(t, "NAD", p.Tag)
	assert.Equal(t, "MS", p.Qualifier)
	assert.Equal(t, 1, p.ElementIdx)
	assert.Equal(t, 2, p.ComponentIdx)
}

func TestParsePath_ElementOnly(t *testing.T) {
	p, err := ParsePath("DTM.0")
	require.NoError(t, err)
	assert.Equal(t, 0, p.ElementIdx)
	assert.Equal(t, -1, p.ComponentIdx)
}

func TestParsePath_LegacyConvention(t *testing.T) {
	p, err := ParsePath("NAD.c2.d1")
	require.NoError(t, err)
	assert.Equal(t, "NAD", p.Tag)
	assert.Equal(t, 1, p.ElementIdx)
	assert.Equal(t, 0, p.ComponentIdx)
}

func TestParsePath_LegacyElementOnly(t *testing.T) {
	p, err := ParsePath("NAD.c3")
	require.NoError(t, err)
	assert.Equal(t, 2, p.ElementIdx)
	assert.Equal(t, -1, p.ComponentIdx)
}

func TestParsePath_BareComponentConvention(t *testing.T) {
	p, err := ParsePath("DTM.d1")
	require.NoError(t, err)
	assert.Equal(t, "DTM", p.Tag)
	assert.Equal(t, 0, p.ElementIdx)
	assert.Equal(t, 0, p.ComponentIdx)
}

func TestParsePath_Errors(t *testing.T) {
	_, err := ParsePath("")
	assert.Error(t, err)

	_, err = ParsePath("NAD[MS")
	assert.Error(t, err)

	_, err = ParsePath(".1")
	assert.Error(t, err)

	_, err = ParsePath("NAD.x")
	assert.Error(t, err)

	_, err = ParsePath("NAD.cX")
	assert.Error(t, err)
}

func TestPathResolve(t *testing.T) {
	p := &Path{ElementIdx: -1, ComponentIdx: -1}
	e, c := p.Resolve()
	assert.Equal(t, 0, e)
	assert.Equal(t, 0, c)

	p2 := &Path{ElementIdx: 3, ComponentIdx: 1}
	e, c = p2.Resolve()
	assert.Equal(t, 3, e)
	assert.Equal(t, 1, c)
}

func TestPathString(t *testing.T) {
	p, err := ParsePath("NAD[MS].1.2")
	require.NoError(t, err)
	assert.Equal(t, "NAD[MS].1.2", p.String())
}
