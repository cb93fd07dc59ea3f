package compiler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/yacobolo/esincss"
)

// FuncMap returns the helpers available to stylesheet templates.
//
//	{{ $theme := vars "brand" (color "#0055aa") "gutter" (px 16) }}
//	:root { {{ $theme.Declarations }} }
//	a { color: {{ $theme.Var "brand" }}; margin: {{ ($theme.Var "gutter").Or "1rem" }}; }
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// units
		"unit": esincss.UnitVal,
		"px":   esincss.Px,
		"rem":  esincss.Rem,
		"em":   esincss.Em,
		"ch":   esincss.Ch,
		"ex":   esincss.Ex,
		"pct":  esincss.Pct,
		"vw":   esincss.Vw,
		"vh":   esincss.Vh,
		"vmin": esincss.Vmin,
		"vmax": esincss.Vmax,
		"ms":   esincss.Ms,
		"cm":   esincss.Cm,
		"deg":  esincss.Deg,
		"fr":   esincss.Fr,
		"pctF": esincss.PctF,
		"sec":  esincss.MsSec,
		"turn": esincss.DegTurn,

		// colors
		"color":      esincss.ParseColor,
		"rgb":        esincss.RGB,
		"rgba":       esincss.RGBA,
		"hsl":        esincss.HSL,
		"lighten":    func(ratio float64, c esincss.Color) esincss.Color { return c.Lighten(ratio) },
		"darken":     func(ratio float64, c esincss.Color) esincss.Color { return c.Darken(ratio) },
		"saturate":   func(ratio float64, c esincss.Color) esincss.Color { return c.Saturate(ratio) },
		"desaturate": func(ratio float64, c esincss.Color) esincss.Color { return c.Desaturate(ratio) },
		"fade":       func(ratio float64, c esincss.Color) esincss.Color { return c.Fade(ratio) },
		"alpha":      func(a float64, c esincss.Color) esincss.Color { return c.Alpha(a) },
		"mix":        func(t float64, other, c esincss.Color) esincss.Color { return c.Mix(other, t) },

		// variables
		"vars":     makeVars,
		"join":     esincss.JoinVariables,
		"override": override,
		"isVar":    esincss.IsVar,
		"typeOf":   esincss.ResolveType,

		// misc
		"css":    esincss.CSS,
		"scoped": esincss.Scoped,
	}
}

// makeVars builds a registry from alternating name/value arguments.
func makeVars(pairs ...any) (*esincss.Registry, error) {
	entries, err := entriesOf(pairs)
	if err != nil {
		return nil, err
	}
	return esincss.MakeVariables(entries, esincss.VariableOptions{})
}

func override(reg *esincss.Registry, pairs ...any) (string, error) {
	entries, err := entriesOf(pairs)
	if err != nil {
		return "", err
	}
	return reg.Override(entries), nil
}

func entriesOf(pairs []any) ([]esincss.Entry, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("expected name/value pairs, got %d arguments", len(pairs))
	}
	entries := make([]esincss.Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("variable name at position %d must be a string, got %T", i, pairs[i])
		}
		entries = append(entries, esincss.Entry{Name: name, Value: pairs[i+1]})
	}
	return entries, nil
}

// loadFile renders the stylesheet template at path.
func loadFile(path string) (string, error) {
	// #nosec G304 - path comes from the resolved input list
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return render(filepath.Base(path), string(content))
}

func render(name, src string) (string, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(FuncMap()).
		Parse(src)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}
