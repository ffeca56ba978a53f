// Package decl loads parameter schema declarations from YAML or JSON files.
//
// A declaration names an operation and lists its parameters in positional
// order:
//
//	name: open
//	params:
//	  - {name: path, type: string, requiredness: required}
//	  - {name: mode, type: int, requiredness: optional}
//	  - {name: bufsiz, type: int, requiredness: defaulted, default: 4096}
//
// Only declaration literals (defaults) are converted here. Argument values are
// never parsed from text.
package decl

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	namedargs "github.com/reoring/namedargs"
	"github.com/reoring/namedargs/i18n"
)

// Decl is one declared operation.
type Decl struct {
	Name   string  `yaml:"name" json:"name"`
	Doc    string  `yaml:"doc,omitempty" json:"doc,omitempty"`
	Params []Param `yaml:"params" json:"params"`
}

// Param is one declared parameter.
type Param struct {
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"`
	Requiredness string `yaml:"requiredness" json:"requiredness"`
	Default      any    `yaml:"default,omitempty" json:"default,omitempty"`
	Doc          string `yaml:"doc,omitempty" json:"doc,omitempty"`
}

var (
	// ErrUnsupportedFormat is returned by ParseFile for unknown file extensions.
	ErrUnsupportedFormat = errors.New("decl: unsupported file extension (want .yaml, .yml or .json)")
	// ErrEmpty is the cause of the parse issue for input with no declarations.
	ErrEmpty = errors.New("decl: no declarations")
	// ErrTrailingData is the cause of the parse issue for JSON with content
	// after the first value.
	ErrTrailingData = errors.New("decl: unexpected data after the declaration")
)

// ParseFile reads all declarations from a YAML or JSON file.
func ParseFile(path string) ([]*Decl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseYAML decodes a multi-document YAML stream, one declaration per
// document. Unknown fields are rejected.
func ParseYAML(data []byte) ([]*Decl, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var out []*Decl
	for i := 0; ; i++ {
		var d Decl
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, parseIssue(namedargs.Root().Index(i), err)
		}
		out = append(out, &d)
	}
	if len(out) == 0 {
		return nil, parseIssue(namedargs.Root(), ErrEmpty)
	}
	return out, nil
}

// ParseJSON decodes either one declaration object or an array of them.
// Numbers are kept as json.Number until converted to the declared type.
func ParseJSON(data []byte) ([]*Decl, error) {
	trimmed := bytes.TrimSpace(data)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if len(trimmed) == 0 {
		return nil, parseIssue(namedargs.Root(), ErrEmpty)
	}
	var out []*Decl
	if trimmed[0] == '[' {
		if err := dec.Decode(&out); err != nil {
			return nil, parseIssue(namedargs.Root(), err)
		}
	} else {
		var d Decl
		if err := dec.Decode(&d); err != nil {
			return nil, parseIssue(namedargs.Root(), err)
		}
		out = []*Decl{&d}
	}
	if dec.More() {
		return nil, parseIssue(namedargs.Root(), ErrTrailingData)
	}
	if len(out) == 0 {
		return nil, parseIssue(namedargs.Root(), ErrEmpty)
	}
	return out, nil
}

func parseIssue(at namedargs.PathRef, err error) namedargs.Issues {
	it := at.Issue(namedargs.CodeParseError, i18n.T(namedargs.CodeParseError, nil))
	it.Hint = err.Error()
	it.Cause = err
	return namedargs.Issues{it}
}

// Schema builds the declared schema. Every problem in the declaration is
// reported, with paths of the form /params/<i>/<field>.
func (d *Decl) Schema() (*namedargs.Schema, error) {
	var iss namedargs.Issues
	if d.Name == "" {
		iss = namedargs.AppendIssues(iss, invalid(namedargs.Root().Field("name"), "declaration name must not be empty"))
	}
	kinds := make([]namedargs.Param, 0, len(d.Params))
	for i, p := range d.Params {
		k, pi := p.kind(namedargs.Root().Field("params").Index(i))
		if len(pi) > 0 {
			iss = namedargs.AppendIssues(iss, pi...)
			continue
		}
		kinds = append(kinds, k)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return namedargs.NewSchema(kinds...)
}

// Validate reports every problem of the declaration without keeping the
// schema.
func (d *Decl) Validate() error {
	_, err := d.Schema()
	return err
}

// Descriptions returns the per-parameter docs keyed by name.
func (d *Decl) Descriptions() map[string]string {
	out := make(map[string]string, len(d.Params))
	for _, p := range d.Params {
		if p.Doc != "" {
			out[p.Name] = p.Doc
		}
	}
	return out
}

func (p Param) kind(at namedargs.PathRef) (*namedargs.Kind, namedargs.Issues) {
	var iss namedargs.Issues
	if p.Name == "" {
		iss = append(iss, invalid(at.Field("name"), "parameter name must not be empty"))
	}
	typ, ok := LookupType(p.Type)
	if !ok {
		it := at.Field("type").Issue(namedargs.CodeInvalidType, i18n.T(namedargs.CodeInvalidType, nil), "type", p.Type)
		it.Hint = "supported types: " + strings.Join(TypeNames(), ", ")
		iss = append(iss, it)
	}
	req, ok := parseRequiredness(p.Requiredness)
	if !ok {
		iss = append(iss, invalid(at.Field("requiredness"), "requiredness must be one of required, optional, defaulted"))
	}
	if len(iss) > 0 {
		return nil, iss
	}
	var def any
	switch {
	case req == namedargs.Defaulted && p.Default == nil:
		return nil, namedargs.Issues{invalid(at.Field("default"), "defaulted parameter needs a default")}
	case req != namedargs.Defaulted && p.Default != nil:
		return nil, namedargs.Issues{invalid(at.Field("default"), req.String()+" parameter must not carry a default")}
	case req == namedargs.Defaulted:
		v, err := convertDefault(p.Default, p.Type)
		if err != nil {
			it := at.Field("default").Issue(namedargs.CodeInvalidType, i18n.T(namedargs.CodeInvalidType, nil), "type", p.Type)
			it.Hint = err.Error()
			it.Cause = err
			return nil, namedargs.Issues{it}
		}
		def = v
	}
	k, err := namedargs.NewKind(p.Name, req, typ, def)
	if err != nil {
		if ki, ok := namedargs.AsIssues(err); ok {
			return nil, rebase(at, ki)
		}
		return nil, namedargs.Issues{invalid(at, err.Error())}
	}
	return k, nil
}

func parseRequiredness(s string) (namedargs.Requiredness, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "required", "req":
		return namedargs.Required, true
	case "optional", "opt":
		return namedargs.Optional, true
	case "defaulted", "def", "default":
		return namedargs.Defaulted, true
	default:
		return 0, false
	}
}

func invalid(at namedargs.PathRef, hint string) namedargs.Issue {
	it := at.Issue(namedargs.CodeInvalidSchema, i18n.T(namedargs.CodeInvalidSchema, nil))
	it.Hint = hint
	return it
}

// rebase moves kind-level issues (rooted at /<name>) under the parameter path.
func rebase(at namedargs.PathRef, in namedargs.Issues) namedargs.Issues {
	out := make(namedargs.Issues, 0, len(in))
	for _, it := range in {
		it.Path = at.Pointer()
		out = append(out, it)
	}
	return out
}
