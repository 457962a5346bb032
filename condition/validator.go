package condition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edifix/edifix/edifact"
)

// Validator runs one Workflow's field rules against a Context and
// produces a Report, per spec §4.6.
type Validator struct {
	evaluator Evaluator
}

// NewValidator creates a Validator driven by evaluator.
func NewValidator(evaluator Evaluator) *Validator {
	return &Validator{evaluator: evaluator}
}

// Validate evaluates every field rule in wf against ctx: missing
// mandatory fields become "AHB001", conditions that could not be
// resolved become "CND001" info notes, and cross-field qualifier code
// validation produces "COD002" (spec §4.6).
func (v *Validator) Validate(ctx Context, wf *Workflow) (*Report, error) {
	report := &Report{Metadata: Metadata{
		FormatVersion: wf.FormatVersion,
		MessageType:   wf.MessageType,
		PID:           wf.PID,
	}}

	report.Issues = append(report.Issues, v.checkCodes(ctx, wf)...)

	for _, rule := range wf.Fields {
		status, err := ParseStatus(rule.Status)
		if err != nil {
			return nil, fmt.Errorf("condition: field %q: %w", rule.Name, err)
		}

		mandatory, info := v.evaluateMandatory(status, ctx)
		if info != nil {
			info.FieldPath = rule.Path
			report.Issues = append(report.Issues, *info)
		}
		if mandatory && !present(ctx, rule.Path) {
			report.Issues = append(report.Issues, Issue{
				Severity:  edifact.SeverityError,
				Category:  CategoryAHB,
				Code:      "AHB001",
				Message:   fmt.Sprintf("%s is required", rule.Name),
				FieldPath: rule.Path,
			})
		}
	}

	return report, nil
}

// evaluateMandatory applies spec §4.6's Muss/X semantics: no
// expression is unconditionally mandatory; an expression gates
// mandatoriness on its three-valued result, emitting an Info note when
// the result is Unknown; Soll/Kann are never mandatory.
func (v *Validator) evaluateMandatory(status *Status, ctx Context) (mandatory bool, info *Issue) {
	if !status.Kind.Mandatory() {
		return false, nil
	}
	if status.Expr == nil {
		return true, nil
	}

	result := Eval(status.Expr, func(n int) Tri { return v.evaluator.Evaluate(n, ctx) })
	switch result {
	case True:
		return true, nil
	case False:
		return false, nil
	default:
		return false, &Issue{
			Severity: edifact.SeverityInfo,
			Category: CategoryAHB,
			Code:     "CND001",
			Message:  "condition could not be determined",
		}
	}
}

// present approximates field presence by checking whether the tree
// carries the rule's segment tag. Resolving the exact element position
// requires the full per-PID schema (schema.PIDSchema), which a caller
// wiring this validator into the mapping pipeline can do instead by
// checking schema.Resolver before calling Validate; this package keeps
// the segment-tag check as a self-contained fallback.
func present(ctx Context, path string) bool {
	segs := stripSG(path)
	if len(segs) == 0 {
		return true
	}
	return ctx.HasSegment(segs[0])
}

// checkCodes implements the cross-field code-validation pass: rules
// that target the same simple ("SG<n>.TAG.<dataelement>" stripped to
// "TAG.<dataelement>") qualifier path have their AllowedCodes unioned,
// then every matching segment instance's qualifier is checked against
// that union. Composite paths (3+ segments after stripping) are
// skipped, per spec §4.6, since resolving composite IDs to positional
// indices without the full schema is undefined.
func (v *Validator) checkCodes(ctx Context, wf *Workflow) []Issue {
	type group struct {
		tag     string
		allowed map[string]bool
	}
	groups := make(map[string]*group)
	var order []string

	for _, rule := range wf.Fields {
		segs := stripSG(rule.Path)
		if len(segs) != 2 {
			continue
		}
		key := strings.Join(segs, ".")
		g, ok := groups[key]
		if !ok {
			g = &group{tag: segs[0], allowed: make(map[string]bool)}
			groups[key] = g
			order = append(order, key)
		}
		for _, code := range rule.AllowedCodes {
			g.allowed[code] = true
		}
	}

	var issues []Issue
	for _, key := range order {
		g := groups[key]
		if len(g.allowed) == 0 {
			continue
		}
		expected := sortedKeys(g.allowed)
		for _, seg := range ctx.FindSegments(g.tag) {
			q, ok := seg.Qualifier()
			if !ok || g.allowed[q] {
				continue
			}
			issues = append(issues, Issue{
				Severity:  edifact.SeverityError,
				Category:  CategoryCode,
				Code:      "COD002",
				Message:   fmt.Sprintf("code %q is not allowed at %s", q, key),
				FieldPath: key,
				Actual:    q,
				Expected:  strings.Join(expected, ", "),
			})
		}
	}
	return issues
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// stripSG splits a dotted AHB path and drops any "SG<digits>" segment,
// per spec §4.6 "2 path segments after stripping SG prefixes."
func stripSG(path string) []string {
	parts := strings.Split(path, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if isSGSegment(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isSGSegment(s string) bool {
	if !strings.HasPrefix(s, "SG") || len(s) <= 2 {
		return false
	}
	for _, r := range s[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
