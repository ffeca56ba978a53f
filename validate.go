package namedargs

import (
	json "github.com/goccy/go-json"
)

// Report is the classification of one argument set against a schema.
// It is valid iff all three lists are empty.
type Report struct {
	// Required kinds with no supplied argument, in schema order.
	MissingRequired []*Kind
	// Kinds supplied more than once, in schema order.
	Duplicated []*Kind
	// Arguments naming no kind of the schema, in argument order.
	Invalid []Arg

	dupCounts []int // parallel to Duplicated
	invalidAt []int // parallel to Invalid: position in the argument set
}

// Validate classifies args against s. The three checks are independent and
// all run to completion. Validate has no side effects and never invokes the
// target operation.
func Validate(s *Schema, args ...Arg) Report {
	var r Report
	counts := make([]int, len(s.kinds))
	for i, a := range args {
		idx, ok := s.index[a.kind]
		if !ok {
			r.Invalid = append(r.Invalid, a)
			r.invalidAt = append(r.invalidAt, i)
			continue
		}
		counts[idx]++
	}
	for i, k := range s.kinds {
		switch {
		case counts[i] == 0 && k.req == Required:
			r.MissingRequired = append(r.MissingRequired, k)
		case counts[i] > 1:
			r.Duplicated = append(r.Duplicated, k)
			r.dupCounts = append(r.dupCounts, counts[i])
		}
	}
	return r
}

// Valid reports whether the argument set can be bound.
func (r Report) Valid() bool {
	return len(r.MissingRequired) == 0 && len(r.Duplicated) == 0 && len(r.Invalid) == 0
}

// Issues renders the report: missing parameters first, then duplicates, then
// unknown arguments, each list in report order.
func (r Report) Issues() Issues {
	if r.Valid() {
		return nil
	}
	iss := make(Issues, 0, len(r.MissingRequired)+len(r.Duplicated)+len(r.Invalid))
	for _, k := range r.MissingRequired {
		iss = append(iss, IssueAt(Root().Field(k.name), CodeMissingRequired, map[string]any{"param": k.name}))
	}
	for i, k := range r.Duplicated {
		params := map[string]any{"param": k.name}
		if i < len(r.dupCounts) {
			params["count"] = r.dupCounts[i]
		}
		iss = append(iss, IssueAt(Root().Field(k.name), CodeDuplicateArgument, params))
	}
	for i, a := range r.Invalid {
		params := map[string]any{"param": a.Name()}
		at := Root().Field("args")
		if i < len(r.invalidAt) {
			params["position"] = r.invalidAt[i]
			at = at.Index(r.invalidAt[i])
		}
		iss = append(iss, IssueAt(at, CodeUnknownArgument, params))
	}
	return iss
}

// Err returns the report as an error, or nil when valid.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Issues()
}

// MissingNames returns the names of MissingRequired.
func (r Report) MissingNames() []string { return kindNames(r.MissingRequired) }

// DuplicatedNames returns the names of Duplicated.
func (r Report) DuplicatedNames() []string { return kindNames(r.Duplicated) }

// InvalidNames returns the names of Invalid ("" for a zero Arg).
func (r Report) InvalidNames() []string {
	out := make([]string, len(r.Invalid))
	for i, a := range r.Invalid {
		out[i] = a.Name()
	}
	return out
}

type reportJSON struct {
	Valid           bool     `json:"valid"`
	MissingRequired []string `json:"missingRequired"`
	Duplicated      []string `json:"duplicated"`
	Invalid         []string `json:"invalid"`
}

// MarshalJSON encodes the report by parameter name.
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		Valid:           r.Valid(),
		MissingRequired: r.MissingNames(),
		Duplicated:      r.DuplicatedNames(),
		Invalid:         r.InvalidNames(),
	})
}
