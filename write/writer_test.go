package write

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/edifact"
	"github.com/edifix/edifix/schema"
)

func segment(tag string, elements ...[]string) edifact.Segment {
	return edifact.NewSegment(tag, elements...)
}

func minimalTree() *assemble.Tree {
	return &assemble.Tree{
		PreGroup: []edifact.Segment{
			segment("UNB", []string{"UNOC", "3"}, []string{"9900123456789", "500"}, []string{"9900000000001", "500"}, []string{"210101", "0900"}, []string{"1"}),
			segment("UNH", []string{"1"}, []string{"UTILMD", "D", "11A", "UN", "S1.0a"}),
			segment("BGM", []string{"E03"}, []string{"DOC001"}),
		},
		PostGroup: []edifact.Segment{
			segment("UNT", []string{"0"}, []string{"1"}),
			segment("UNZ", []string{"0"}, []string{"1"}),
		},
		PostGroupStart: 3,
	}
}

func TestWriter_RecomputesTrailerCounts(t *testing.T) {
	tree := minimalTree()
	w := New()
	out, err := w.Write(tree, assemble.Grammar{}, edifact.DefaultDelimiters())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "UNT+3+1'")
	assert.Contains(t, s, "UNZ+1+1'")
}

func TestWriter_NoUNAForDefaultDelimiters(t *testing.T) {
	tree := minimalTree()
	out, err := New().Write(tree, assemble.Grammar{}, edifact.DefaultDelimiters())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "UNA")
}

func TestWriter_EmitsUNAForCustomDelimiters(t *testing.T) {
	tree := minimalTree()
	delims := &edifact.Delimiters{Component: ',', Element: '+', Release: '?', Terminator: '\'', DecimalMark: '.'}
	out, err := New().Write(tree, assemble.Grammar{}, delims)
	require.NoError(t, err)
	require.True(t, len(out) >= 9)
	assert.Equal(t, "UNA,+.? '", string(out[:9]))
}

func TestWriter_EscapesReleaseCharacters(t *testing.T) {
	tree := &assemble.Tree{
		PreGroup: []edifact.Segment{
			segment("UNB", []string{"UNOC", "3"}, []string{"S"}, []string{"R"}, []string{"d", "t"}, []string{"1"}),
			segment("UNH", []string{"1"}, []string{"UTILMD"}),
			segment("FTX", []string{"value:with+delim"}),
		},
		PostGroup: []edifact.Segment{
			segment("UNT", []string{"0"}, []string{"1"}),
			segment("UNZ", []string{"0"}, []string{"1"}),
		},
		PostGroupStart: 3,
	}
	out, err := New().Write(tree, assemble.Grammar{}, edifact.DefaultDelimiters())
	require.NoError(t, err)
	assert.Contains(t, string(out), "FTX+value?:with?+delim'")
}

func TestWriter_PadsToSegmentStructure(t *testing.T) {
	structure := schema.NewSegmentStructure()
	structure.Set("NAD", 4)
	tree := &assemble.Tree{
		PreGroup: []edifact.Segment{
			segment("UNB", []string{"UNOC", "3"}, []string{"S"}, []string{"R"}, []string{"d", "t"}, []string{"1"}),
			segment("UNH", []string{"1"}, []string{"UTILMD"}),
			segment("NAD", []string{"Z09"}),
		},
		PostGroup: []edifact.Segment{
			segment("UNT", []string{"0"}, []string{"1"}),
			segment("UNZ", []string{"0"}, []string{"1"}),
		},
		PostGroupStart: 3,
	}
	out, err := New(WithSegmentStructure(structure)).Write(tree, assemble.Grammar{}, edifact.DefaultDelimiters())
	require.NoError(t, err)
	assert.Contains(t, string(out), "NAD+Z09+++'")
}

func TestWriter_FillsMissingControlReference(t *testing.T) {
	tree := &assemble.Tree{
		PreGroup: []edifact.Segment{
			segment("UNB", []string{"UNOC", "3"}, []string{"S"}, []string{"R"}, []string{"d", "t"}),
			segment("UNH", []string{}, []string{"UTILMD"}),
		},
		PostGroup: []edifact.Segment{
			segment("UNT", []string{"0"}, []string{"1"}),
			segment("UNZ", []string{"0"}, []string{"1"}),
		},
		PostGroupStart: 2,
	}
	out, err := New(WithControlReference(func() string { return "REF1" })).Write(tree, assemble.Grammar{}, edifact.DefaultDelimiters())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "UNB+UNOC:3+S+R+d:t+REF1'")
	assert.Contains(t, s, "UNH+REF1+UTILMD'")
}

func TestWriter_RawSegmentEmittedVerbatim(t *testing.T) {
	tree := &assemble.Tree{
		PreGroup: []edifact.Segment{
			segment("UNB", []string{"UNOC", "3"}, []string{"S"}, []string{"R"}, []string{"d", "t"}, []string{"1"}),
			segment("UNH", []string{"1"}, []string{"UTILMD"}),
			{Tag: "RFF", Raw: "RFF+ACE:weird?'data"},
		},
		PostGroup: []edifact.Segment{
			segment("UNT", []string{"0"}, []string{"1"}),
			segment("UNZ", []string{"0"}, []string{"1"}),
		},
		PostGroupStart: 3,
	}
	out, err := New().Write(tree, assemble.Grammar{}, edifact.DefaultDelimiters())
	require.NoError(t, err)
	assert.Contains(t, string(out), "RFF+ACE:weird?'data'")
}

// TestWriter_OrdersGroupMembersByMIGCounter mirrors the minimal UTILMD
// roundtrip scenario: three LOC segments sharing one SG4 repetition, each
// qualifier carrying a different MIG counter (Z18=48, Z16=49, Z17=54),
// must be re-emitted in counter order regardless of the order the
// assembler encountered them in.
func TestWriter_OrdersGroupMembersByMIGCounter(t *testing.T) {
	grammar := assemble.Grammar{
		TopLevel: []string{"SG4"},
		RootTags: []string{"BGM"},
		Groups: map[string]assemble.GroupDef{
			"SG4": {
				Name:     "SG4",
				EntryTag: "IDE",
				Members: []assemble.MemberDef{
					{Tag: "LOC", Qualifier: "Z16", Counter: 49},
					{Tag: "LOC", Qualifier: "Z17", Counter: 54},
					{Tag: "LOC", Qualifier: "Z18", Counter: 48},
					{Tag: "STS", Counter: 60},
				},
			},
		},
	}

	tree := &assemble.Tree{
		PreGroup: []edifact.Segment{
			segment("UNB", []string{"UNOC", "3"}, []string{"S"}, []string{"R"}, []string{"d", "t"}, []string{"1"}),
			segment("UNH", []string{"MSG001"}, []string{"UTILMD", "D", "11A", "UN", "S2.1"}),
			segment("BGM", []string{"E03"}, []string{"DOC001"}),
		},
		Groups: []*assemble.GroupInstance{
			{
				Name: "SG4",
				Repetitions: []*assemble.Repetition{
					{
						Entry: segment("IDE", []string{"24"}, []string{"TRANS001"}),
						Segments: []edifact.Segment{
							segment("LOC", []string{"Z16"}, []string{"DE00014545768S0000000000000003054"}),
							segment("LOC", []string{"Z17"}, []string{"MELO001"}),
							segment("LOC", []string{"Z18"}, []string{"NELO001"}),
							segment("STS", []string{"7"}, []string{"E01"}),
						},
					},
				},
			},
		},
		PostGroup: []edifact.Segment{
			segment("UNT", []string{"0"}, []string{"MSG001"}),
			segment("UNZ", []string{"0"}, []string{"1"}),
		},
		PostGroupStart: 3,
	}

	out, err := New().Write(tree, grammar, edifact.DefaultDelimiters())
	require.NoError(t, err)

	s := string(out)
	z18 := strings.Index(s, "LOC+Z18+NELO001'")
	z16 := strings.Index(s, "LOC+Z16+DE00014545768S0000000000000003054'")
	z17 := strings.Index(s, "LOC+Z17+MELO001'")
	require.True(t, z18 >= 0 && z16 >= 0 && z17 >= 0, "all three LOC segments must appear in output: %s", s)
	assert.Less(t, z18, z16, "LOC+Z18 (counter 48) must precede LOC+Z16 (counter 49)")
	assert.Less(t, z16, z17, "LOC+Z16 (counter 49) must precede LOC+Z17 (counter 54)")
}

func TestWriter_NilTreeErrors(t *testing.T) {
	_, err := New().Write(nil, assemble.Grammar{}, nil)
	require.Error(t, err)
}

func TestWriter_MissingUNHErrors(t *testing.T) {
	tree := &assemble.Tree{
		PreGroup: []edifact.Segment{segment("BGM", []string{"E03"})},
	}
	_, err := New().Write(tree, assemble.Grammar{}, nil)
	require.Error(t, err)
}
