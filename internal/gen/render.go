// Package gen renders Go source for declared schemas: one typed marker per
// parameter and one schema variable per declaration.
package gen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"

	"golang.org/x/tools/imports"

	namedargs "github.com/reoring/namedargs"
	"github.com/reoring/namedargs/decl"
	"github.com/reoring/namedargs/i18n"
)

const fileTemplate = `// Code generated by namedargs gen. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedTime}}
	"time"
{{end}}
	namedargs "github.com/reoring/namedargs"
)
{{range .Decls}}
{{if .Doc}}// {{.Doc}}
{{end -}}
var (
{{- range .Params}}
	{{.Ident}} = namedargs.{{.Ctor}}[{{.GoType}}]({{printf "%q" .Name}}{{if .Default}}, {{.Default}}{{end}})
{{- end}}
)

// {{.Ident}}Schema declares the parameters of {{.Name}}.
var {{.Ident}}Schema = namedargs.MustSchema({{join .Idents}})
{{end}}`

var tmpl = template.Must(template.New("file").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(fileTemplate))

type fileData struct {
	Package  string
	NeedTime bool
	Decls    []declData
}

type declData struct {
	Name   string
	Doc    string
	Ident  string
	Params []paramData
	Idents []string
}

type paramData struct {
	Name    string
	Ident   string
	Ctor    string
	GoType  string
	Default string
}

// Render validates every declaration and renders them into one formatted Go
// file of package pkg. Declaration problems are returned as Issues with the
// declaration index prefixed to each path. Two names that map to the same Go
// identifier are reported as invalid_schema at the later one.
func Render(pkg string, decls ...*decl.Decl) ([]byte, error) {
	if pkg == "" {
		pkg = "main"
	}
	data := fileData{Package: pkg}
	var iss namedargs.Issues
	declared := make(map[string]string)
	claim := func(ident string, at namedargs.PathRef) {
		if prev, ok := declared[ident]; ok {
			it := at.Issue(namedargs.CodeInvalidSchema, i18n.T(namedargs.CodeInvalidSchema, nil), "identifier", ident)
			it.Hint = "generated identifier " + ident + " already declared at " + prev
			iss = namedargs.AppendIssues(iss, it)
			return
		}
		declared[ident] = at.Pointer()
	}
	for i, d := range decls {
		claim(Identifier(d.Name)+"Schema", namedargs.Root().Index(i).Field("name"))
	}
	for i, d := range decls {
		s, err := d.Schema()
		if err != nil {
			if di, ok := namedargs.AsIssues(err); ok {
				iss = namedargs.AppendIssues(iss, prefix(i, di)...)
				continue
			}
			return nil, err
		}
		dd := declData{Name: d.Name, Doc: d.Doc, Ident: Identifier(d.Name)}
		for j, k := range s.Kinds() {
			p := paramData{
				Name:   k.Name(),
				Ident:  dd.Ident + Identifier(k.Name()),
				Ctor:   ctor(k.Requiredness()),
				GoType: decl.GoType(d.Params[j].Type),
			}
			claim(p.Ident, namedargs.Root().Index(i).Field("params").Index(j))
			if p.GoType == "time.Duration" {
				data.NeedTime = true
			}
			if v, ok := k.Default(); ok {
				p.Default = literal(v)
			}
			dd.Params = append(dd.Params, p)
			dd.Idents = append(dd.Idents, p.Ident)
		}
		data.Decls = append(data.Decls, dd)
	}
	if len(iss) > 0 {
		return nil, iss
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	out, err := imports.Process(pkg+"_namedargs.go", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return out, nil
}

// Identifier turns a declared name such as "buf_size" or "dry-run" into an
// exported Go identifier ("BufSize", "DryRun").
func Identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteByte('P')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "P"
	}
	return b.String()
}

func ctor(r namedargs.Requiredness) string {
	switch r {
	case namedargs.Optional:
		return "Opt"
	case namedargs.Defaulted:
		return "Def"
	default:
		return "Req"
	}
}

func literal(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case time.Duration:
		return fmt.Sprintf("time.Duration(%d)", int64(t))
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []string:
		q := make([]string, len(t))
		for i, s := range t {
			q[i] = strconv.Quote(s)
		}
		return "[]string{" + strings.Join(q, ", ") + "}"
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func prefix(i int, in namedargs.Issues) namedargs.Issues {
	out := make(namedargs.Issues, 0, len(in))
	for _, it := range in {
		p := "/" + strconv.Itoa(i)
		if it.Path != "/" {
			p += it.Path
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
