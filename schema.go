package namedargs

import (
	"github.com/reoring/namedargs/i18n"
)

// Schema is the ordered, immutable set of parameters of one operation. The
// order is the positional order of the bound sequence.
type Schema struct {
	kinds  []*Kind
	index  map[*Kind]int
	byName map[string]int
}

// NewSchema declares a schema. All violations are reported together: nil or
// unnamed parameters, repeated identities and repeated names.
func NewSchema(params ...Param) (*Schema, error) {
	s := &Schema{
		kinds:  make([]*Kind, 0, len(params)),
		index:  make(map[*Kind]int, len(params)),
		byName: make(map[string]int, len(params)),
	}
	var iss Issues
	for i, p := range params {
		at := Root().Field("params").Index(i)
		var k *Kind
		if p != nil {
			k = p.Kind()
		}
		if k == nil || k.name == "" || k.typ == nil {
			iss = AppendIssues(iss, at.Issue(CodeInvalidSchema, i18n.T(CodeInvalidSchema, nil), "position", i))
			continue
		}
		if j, dup := s.index[k]; dup {
			it := at.Issue(CodeInvalidSchema, i18n.T(CodeInvalidSchema, nil), "param", k.name, "position", i, "first", j)
			it.Hint = "parameter declared twice"
			iss = AppendIssues(iss, it)
			continue
		}
		if j, dup := s.byName[k.name]; dup {
			it := at.Issue(CodeInvalidSchema, i18n.T(CodeInvalidSchema, nil), "param", k.name, "position", i, "first", j)
			it.Hint = "parameter name already declared"
			iss = AppendIssues(iss, it)
			continue
		}
		s.index[k] = len(s.kinds)
		s.byName[k.name] = len(s.kinds)
		s.kinds = append(s.kinds, k)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(params ...Param) *Schema {
	s, err := NewSchema(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of declared parameters.
func (s *Schema) Len() int { return len(s.kinds) }

// Kinds returns the parameters in declaration order.
func (s *Schema) Kinds() []*Kind { return append([]*Kind(nil), s.kinds...) }

// Names returns the parameter names in declaration order.
func (s *Schema) Names() []string { return kindNames(s.kinds) }

// Index returns the declared position of p.
func (s *Schema) Index(p Param) (int, bool) {
	if p == nil {
		return 0, false
	}
	i, ok := s.index[p.Kind()]
	return i, ok
}

// Lookup finds a parameter by name.
func (s *Schema) Lookup(name string) (*Kind, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.kinds[i], true
}

func kindNames(ks []*Kind) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.name
	}
	return out
}
