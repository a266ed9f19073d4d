package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/response"
)

// Header marks generated files.
const Header = "// Code generated by mpd-cmdgen. DO NOT EDIT."

// wrapperData holds pre-computed data for one wrapper.
type wrapperData struct {
	Recv    string
	Type    string
	Method  string
	Name    string
	Kind    string
	Returns string
	Result  string
	Binary  bool
	Nothing bool
}

// fileData holds the data of the whole file.
type fileData struct {
	Header   string
	Package  string
	Wrappers []wrapperData
}

var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

const fileTmpl = `{{.Header}}

package {{.Package}}

import (
	"context"

	"github.com/mpdlink/mpd-go/pkg/response"
)
{{range .Wrappers}}
{{- if .Binary}}
// {{.Method}} reads the binary payload of {{quote .Name}} for resource.
func ({{.Recv}} *{{.Type}}) {{.Method}}(ctx context.Context, resource string) (*response.Binary, error) {
	return {{.Recv}}.ReadBinary(ctx, {{quote .Name}}, resource)
}
{{- else if .Nothing}}
// {{.Method}} sends {{quote .Name}}.
func ({{.Recv}} *{{.Type}}) {{.Method}}(ctx context.Context, args ...any) error {
	_, err := {{.Recv}}.Execute(ctx, {{quote .Name}}, args...)
	return err
}
{{- else}}
// {{.Method}} sends {{quote .Name}} and returns its {{.Kind}} response.
func ({{.Recv}} *{{.Type}}) {{.Method}}(ctx context.Context, args ...any) ({{.Returns}}) {
	v, err := {{.Recv}}.Execute(ctx, {{quote .Name}}, args...)
	return {{.Result}}
}
{{- end}}
{{end -}}
`

var tmpl = template.Must(template.New("file").Funcs(funcMap).Parse(fileTmpl))

// resultShape returns the result list and the return expression for a
// response kind.
func resultShape(k response.Kind) (returns, result string, err error) {
	switch k {
	case response.KindItem:
		return "string, bool, error", "v.Item, v.HasItem, err", nil
	case response.KindList, response.KindPlaylist:
		return "[]string, error", "v.List, err", nil
	case response.KindObject:
		return "response.Record, error", "v.Record, err", nil
	case response.KindObjects, response.KindGroups:
		return "[]response.Record, error", "v.Records, err", nil
	case response.KindStickerGet:
		return "string, error", "v.Item, err", nil
	case response.KindStickers, response.KindStickerList:
		return "map[string]string, error", "v.Stickers, err", nil
	default:
		return "", "", fmt.Errorf("no wrapper shape for %s", k)
	}
}

// Generate renders wrappers on receiver type typ for every public spec.
func Generate(pkg, typ string, specs []command.Spec) (string, error) {
	data := fileData{Header: Header, Package: pkg}
	recv := strings.ToLower(typ[:1])

	for _, s := range specs {
		if s.Internal {
			continue
		}
		w := wrapperData{
			Recv:   recv,
			Type:   typ,
			Method: s.Method,
			Name:   s.Name,
			Kind:   strings.ToLower(s.Kind.String()),
		}
		switch {
		case s.Binary():
			w.Binary = true
		case s.Kind == response.KindNothing:
			w.Nothing = true
		default:
			returns, result, err := resultShape(s.Kind)
			if err != nil {
				return "", fmt.Errorf("%s: %w", s.Name, err)
			}
			w.Returns = returns
			w.Result = result
		}
		data.Wrappers = append(data.Wrappers, w)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering: %w", err)
	}
	return b.String(), nil
}
