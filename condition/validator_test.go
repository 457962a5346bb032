package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/edifact"
)

func treeWithNAD(segs ...edifact.Segment) *assemble.Tree {
	return &assemble.Tree{PreGroup: segs}
}

// TestValidator_S2_NADCrossFieldCode mirrors spec §8 scenario S2: two
// rules at SG2/NAD/3035 allowing MS and MR respectively; a clean
// message reports nothing, and replacing one NAD with a disallowed
// qualifier produces exactly one COD002.
func TestValidator_S2_NADCrossFieldCode(t *testing.T) {
	wf := &Workflow{
		Fields: []FieldRule{
			{Path: "SG2.NAD.3035", Name: "NAD qualifier MS", Status: "Muss", AllowedCodes: []string{"MS"}},
			{Path: "SG2.NAD.3035", Name: "NAD qualifier MR", Status: "Muss", AllowedCodes: []string{"MR"}},
		},
	}
	v := NewValidator(NewMapEvaluator(nil))

	clean := treeWithNAD(
		edifact.NewSegment("NAD", []string{"MS"}, []string{"9900123"}),
		edifact.NewSegment("NAD", []string{"MR"}, []string{"9900456"}),
	)
	report, err := v.Validate(NewContext(clean, nil), wf)
	require.NoError(t, err)
	assert.Empty(t, reportCodes(report, "COD002"))

	dirty := treeWithNAD(
		edifact.NewSegment("NAD", []string{"MS"}, []string{"9900123"}),
		edifact.NewSegment("NAD", []string{"MT"}, []string{"9900456"}),
	)
	report, err = v.Validate(NewContext(dirty, nil), wf)
	require.NoError(t, err)
	issues := reportCodes(report, "COD002")
	require.Len(t, issues, 1)
	assert.Equal(t, "MT", issues[0].Actual)
	assert.Equal(t, "MR, MS", issues[0].Expected)
}

// TestValidator_S3_ConditionalMandatory mirrors spec §8 scenario S3.
func TestValidator_S3_ConditionalMandatory(t *testing.T) {
	wf := &Workflow{
		Fields: []FieldRule{
			{Path: "NAD", Name: "NAD segment", Status: "Muss [182] ∧ [152]"},
		},
	}

	empty := &assemble.Tree{}

	bothTrue := NewValidator(NewMapEvaluator(map[int]Tri{182: True, 152: True}))
	report, err := bothTrue.Validate(NewContext(empty, nil), wf)
	require.NoError(t, err)
	require.Len(t, reportCodes(report, "AHB001"), 1)

	oneFalse := NewValidator(NewMapEvaluator(map[int]Tri{182: True, 152: False}))
	report, err = oneFalse.Validate(NewContext(empty, nil), wf)
	require.NoError(t, err)
	assert.Empty(t, report.Issues)

	oneUnknown := NewValidator(NewMapEvaluator(map[int]Tri{182: True}))
	report, err = oneUnknown.Validate(NewContext(empty, nil), wf)
	require.NoError(t, err)
	require.Len(t, reportCodes(report, "CND001"), 1)
	assert.Equal(t, edifact.SeverityInfo, reportCodes(report, "CND001")[0].Severity)
	assert.Empty(t, reportCodes(report, "AHB001"))
}

func TestValidator_BareMussPresent(t *testing.T) {
	wf := &Workflow{Fields: []FieldRule{{Path: "BGM", Name: "document message", Status: "Muss"}}}
	v := NewValidator(NewMapEvaluator(nil))

	present := treeWithNAD(edifact.NewSegment("BGM", []string{"E03"}))
	report, err := v.Validate(NewContext(present, nil), wf)
	require.NoError(t, err)
	assert.Empty(t, report.Issues)

	missing := &assemble.Tree{}
	report, err = v.Validate(NewContext(missing, nil), wf)
	require.NoError(t, err)
	require.Len(t, reportCodes(report, "AHB001"), 1)
}

func TestValidator_SollNeverErrors(t *testing.T) {
	wf := &Workflow{Fields: []FieldRule{{Path: "COM", Name: "comment", Status: "Soll [999]"}}}
	v := NewValidator(NewMapEvaluator(nil))
	report, err := v.Validate(NewContext(&assemble.Tree{}, nil), wf)
	require.NoError(t, err)
	assert.False(t, report.HasErrors())
}

func TestValidator_CompositePathsSkippedForCodeCheck(t *testing.T) {
	wf := &Workflow{
		Fields: []FieldRule{
			{Path: "SG2.NAD.CTA.3139", Name: "composite", Status: "Muss", AllowedCodes: []string{"IC"}},
		},
	}
	v := NewValidator(NewMapEvaluator(nil))
	tree := treeWithNAD(edifact.NewSegment("NAD", []string{"ZZ"}))
	report, err := v.Validate(NewContext(tree, nil), wf)
	require.NoError(t, err)
	assert.Empty(t, reportCodes(report, "COD002"))
}

func TestValidator_ExternalProvider(t *testing.T) {
	ev := NewEvaluator("UTILMD", "S2.1")
	ev.RegisterExternal(300)
	wf := &Workflow{Fields: []FieldRule{{Path: "NAD", Name: "role check", Status: "Muss [300]"}}}
	v := NewValidator(ev)

	provider := externalFunc(func(n int, _ Context) Tri {
		if n == 300 {
			return False
		}
		return Unknown
	})
	report, err := v.Validate(NewContext(&assemble.Tree{}, provider), wf)
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
}

type externalFunc func(conditionNumber int, ctx Context) Tri

func (f externalFunc) Evaluate(n int, ctx Context) Tri { return f(n, ctx) }

func reportCodes(r *Report, code string) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Code == code {
			out = append(out, i)
		}
	}
	return out
}
