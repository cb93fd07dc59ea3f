package esincss

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVariables(t *testing.T, input []Entry, opts VariableOptions) *Registry {
	t.Helper()
	reg, err := MakeVariables(input, opts)
	require.NoError(t, err)
	return reg
}

func componentVars(t *testing.T) *Registry {
	return mustVariables(t, []Entry{
		{"componentWidth", Px(999)},
		{"componentWidth--small", "123px"},
		{"componentWidth__large", 1500},
	}, VariableOptions{})
}

func TestMakeVariables_Declarations(t *testing.T) {
	reg := componentVars(t)
	assert.Equal(t,
		"--componentWidth: 999px;\n"+
			"--componentWidth--small: 123px;\n"+
			"--componentWidth__large: 1500;\n",
		reg.Declarations)

	assert.Equal(t, []string{"componentWidth", "componentWidth--small", "componentWidth__large"}, reg.Names())
}

func TestMakeVariables_DeclarationOrderAndTrimming(t *testing.T) {
	reg := mustVariables(t, []Entry{{"foo", 1}, {"bar", "a"}}, VariableOptions{})
	assert.Equal(t, "--foo: 1;\n--bar: a;\n", reg.Declarations)

	trimmed := mustVariables(t, []Entry{{"foo", " 1\t "}}, VariableOptions{})
	assert.Equal(t, "--foo: 1;\n", trimmed.Declarations)
}

func TestMakeVariables_PrinterValuesReferenceOtherVariables(t *testing.T) {
	base := mustVariables(t, []Entry{{"brand", "#f00"}}, VariableOptions{})
	derived := mustVariables(t, []Entry{{"link", base.Var("brand")}}, VariableOptions{})
	assert.Equal(t, "--link: var(--brand);\n", derived.Declarations)
}

func TestRegistry_Override(t *testing.T) {
	reg := componentVars(t)
	before := reg.Declarations

	t.Run("renders selected variables", func(t *testing.T) {
		got := reg.Override([]Entry{
			{"componentWidth", "0px "},
			{"componentWidth__large", "10px"},
		})
		assert.Equal(t, "--componentWidth: 0px;\n--componentWidth__large: 10px;\n", got)
		assert.Equal(t, before, reg.Declarations, "without affecting the originals")
	})

	t.Run("drops unknown names", func(t *testing.T) {
		got := reg.Override([]Entry{
			{"componentWidth", "1px"},
			{"someUnknownVariable", "0px"},
		})
		assert.Equal(t, "--componentWidth: 1px;\n", got)
	})

	t.Run("nil and false mean omit", func(t *testing.T) {
		var nilPrinter *Printer
		got := reg.Override([]Entry{
			{"componentWidth", nil},
			{"componentWidth--small", false},
			{"componentWidth__large", nilPrinter},
		})
		assert.Empty(t, got)
	})

	t.Run("zero is a value", func(t *testing.T) {
		assert.Equal(t, "--componentWidth: 0;\n", reg.Override([]Entry{{"componentWidth", 0}}))
	})
}

func TestPrinter(t *testing.T) {
	reg := componentVars(t)

	w := reg.Var("componentWidth")
	require.NotNil(t, w)
	assert.Equal(t, "var(--componentWidth)", w.String())
	assert.Equal(t, "var(--componentWidth--small)", reg.Var("componentWidth--small").String())
	assert.Equal(t, "var(--componentWidth__large)", reg.Var("componentWidth__large").String())
	assert.Equal(t, "--componentWidth", w.CSSName())
	assert.Equal(t, "var(--componentWidth, defaultVal)", w.Or("defaultVal"))
	assert.Equal(t, "var(--componentWidth, 10px)", w.Or(Px(10)))
	assert.Equal(t, "var(--componentWidth)", w.Or(nil))
	assert.Equal(t, "var(--componentWidth)", w.Or(""))
	assert.Equal(t, "var(--componentWidth, var(--componentWidth__large))", w.Or(reg.Var("componentWidth__large")))

	assert.Nil(t, reg.Var("nope"))
}

func TestRegistry_VarsIsACopy(t *testing.T) {
	reg := componentVars(t)
	vars := reg.Vars()
	delete(vars, "componentWidth")
	vars["injected"] = &Printer{}

	assert.NotNil(t, reg.Var("componentWidth"))
	assert.Nil(t, reg.Var("injected"))
}

func TestPrinterTypes(t *testing.T) {
	reg := mustVariables(t, []Entry{
		{"z1", 0},
		{"z2", "0"},
		{"z3", "-0"},
		{"s1", Px(123)},
		{"s2", Rem(1.5)},
		{"s3", "-2em"},
		{"t1", Ms(500)},
		{"t2", ".5s"},
		{"a", Deg(90)},
		{"p1", Pct(1.5)},
		{"p2", "115.5%"},
		{"c1", MustColor("blue")},
		{"c2", "#ff0000ff"},
		{"c3", "rgba(123, 0, 0, .9)"},
		{"c4", "currentColor"},
		{"n1", 123},
		{"n2", "1.23"},
		{"u1", "0 " + Px(123).String()},
		{"u2", "13furlong"},
	}, VariableOptions{})

	want := map[string]string{
		"z1": "zero", "z2": "zero", "z3": "zero",
		"s1": "size:px", "s2": "size:rem", "s3": "size:em",
		"t1": "time:ms", "t2": "time:s",
		"a":  "angle:deg",
		"p1": "percent", "p2": "percent",
		"c1": "color", "c2": "color", "c3": "color", "c4": "color",
		"n1": "number", "n2": "number",
		"u1": "unknown", "u2": "unknown",
	}
	for name, typ := range want {
		assert.Equal(t, typ, reg.Var(name).Type(), name)
	}
}

func TestMakeVariables_NameValidation(t *testing.T) {
	valid := []string{"--", "--xx", "link", "a_b-c", "ABC123"}
	for _, name := range valid {
		_, err := MakeVariables([]Entry{{name, "100px"}}, VariableOptions{})
		assert.NoError(t, err, "%q should be allowed", name)
	}

	invalid := []string{"", " linkColor", "þú", "link color", "a:b", "a{b}", "ab()"}
	for _, name := range invalid {
		reg, err := MakeVariables([]Entry{{name, "100px"}}, VariableOptions{})
		require.Error(t, err, "%q should be rejected", name)
		assert.Nil(t, reg, "no partial registry")
		assert.ErrorIs(t, err, ErrName)

		var nameErr *NameError
		require.True(t, errors.As(err, &nameErr))
		assert.Equal(t, name, nameErr.Name)
	}
}

func TestMakeVariables_FailsFastOnAnyBadName(t *testing.T) {
	reg, err := MakeVariables([]Entry{{"ok", 1}, {"a:b", 2}, {"fine", 3}}, VariableOptions{})
	require.Error(t, err)
	assert.Nil(t, reg)
	assert.Contains(t, err.Error(), "a:b")
}

func TestMakeVariables_CustomNameRe(t *testing.T) {
	custom := regexp.MustCompile(`(?i)^[þú]{2}$`)

	reg := mustVariables(t, []Entry{{"þú", "red"}, {"úþ", "blue"}}, VariableOptions{NameRe: custom})
	assert.Equal(t, "--þú: red;\n--úþ: blue;\n", reg.Declarations)

	_, err := MakeVariables([]Entry{{"hi", "red"}}, VariableOptions{NameRe: custom})
	assert.ErrorIs(t, err, ErrName, "custom pattern replaces the default")

	_, err = MakeVariables([]Entry{{"link", "red"}}, VariableOptions{})
	assert.NoError(t, err, "default pattern is unaffected")
	_, err = MakeVariables([]Entry{{"þú", "red"}}, VariableOptions{})
	assert.Error(t, err, "default pattern is unaffected")

	for _, partial := range []string{`(?i)[þú]{2}`, `^[þú]{2}`, `[þú]{2}$`, `^$`} {
		_, err := MakeVariables([]Entry{{"þú", "red"}}, VariableOptions{NameRe: regexp.MustCompile(partial)})
		require.Error(t, err, partial)
		assert.ErrorIs(t, err, ErrConfig, partial)

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, partial, cfgErr.Pattern)
	}
}

func TestMakeVariables_ToCSSName(t *testing.T) {
	toDashes := func(name string) string { return strings.ReplaceAll(name, "_", "-") }

	reg := mustVariables(t, []Entry{{"link__hover", "red"}}, VariableOptions{ToCSSName: toDashes})
	assert.Equal(t, "--link--hover: red;\n", reg.Declarations)
	assert.NotNil(t, reg.Var("link__hover"))
	assert.Nil(t, reg.Var("link--hover"))
	assert.Empty(t, reg.Override([]Entry{{"link--hover", "blue"}}))
	assert.Equal(t, "--link--hover: blue;\n", reg.Override([]Entry{{"link__hover", "blue"}}))

	_, err := MakeVariables([]Entry{{"link$$hover", "red"}}, VariableOptions{
		ToCSSName: func(name string) string { return strings.ReplaceAll(name, "$", "-") },
	})
	assert.Error(t, err, "ToCSSName does not bypass name validation")
}

func TestMakeVariables_Namespace(t *testing.T) {
	reg := mustVariables(t, []Entry{{"link_color", "red"}}, VariableOptions{
		Namespace: "my {ns}: ",
		ToCSSName: func(name string) string { return strings.ReplaceAll(name, "_", "-") },
	})
	assert.Equal(t, "--mynslink-color: red;\n", reg.Declarations)
	assert.Equal(t, "var(--mynslink-color)", reg.Var("link_color").String())
	assert.Equal(t, "--mynslink-color: blue;\n", reg.Override([]Entry{{"link_color", "blue"}}))
}

func TestMakeVariables_CustomResolveTypeAndIsColor(t *testing.T) {
	reg := mustVariables(t, []Entry{
		{"normal", "40px"},
		{"custom", "42px"},
		{"color", "blue"},
		{"customColor", "blár"},
	}, VariableOptions{
		ResolveType: func(v any) string {
			if v == "42px" {
				return "ultimate"
			}
			return ""
		},
		IsColor: func(v any) bool { return v == "blár" },
	})

	assert.Equal(t, "size:px", reg.Var("normal").Type())
	assert.Equal(t, "ultimate", reg.Var("custom").Type())
	assert.Equal(t, "color", reg.Var("color").Type())
	assert.Equal(t, "color", reg.Var("customColor").Type())
}

func TestJoinVariables(t *testing.T) {
	a := mustVariables(t, []Entry{{"foo", 1}, {"bar", 2}}, VariableOptions{})
	b := mustVariables(t, []Entry{{"foo", 3}, {"baz", 4}}, VariableOptions{Namespace: "b-"})

	joined := JoinVariables(a, b)

	assert.Equal(t, "--foo: 1;\n--bar: 2;\n--b-foo: 3;\n--b-baz: 4;\n", joined.Declarations)
	assert.Equal(t, 2, strings.Count(joined.Declarations, "foo:"))
	assert.Same(t, b.Var("foo"), joined.Var("foo"), "later registries win")
	assert.Same(t, a.Var("bar"), joined.Var("bar"))
	assert.Equal(t, []string{"foo", "bar", "baz"}, joined.Names())

	assert.Equal(t, "--b-foo: 5;\n--bar: 6;\n--b-baz: 7;\n",
		joined.Override([]Entry{{"foo", 5}, {"bar", 6}, {"baz", 7}, {"nope", 8}}))

	// Joining leaves the inputs untouched.
	assert.Equal(t, "--foo: 1;\n--bar: 2;\n", a.Declarations)
}

func TestJoinVariables_DuplicateDeclarationsKeepOrder(t *testing.T) {
	first := mustVariables(t, []Entry{{"foo", "red"}}, VariableOptions{})
	second := mustVariables(t, []Entry{{"foo", "blue"}}, VariableOptions{})

	joined := JoinVariables(first, second)
	assert.Equal(t, "--foo: red;\n--foo: blue;\n", joined.Declarations)

	reversed := JoinVariables(second, first)
	assert.Equal(t, "--foo: blue;\n--foo: red;\n", reversed.Declarations)
}

func TestRegistry_DeclarationsAreCallerOwned(t *testing.T) {
	reg := mustVariables(t, []Entry{{"foo", 1}}, VariableOptions{})
	reg.Declarations += "--raw: 2;\n"

	joined := JoinVariables(reg)
	assert.Equal(t, "--foo: 1;\n--raw: 2;\n", joined.Declarations)
	assert.Nil(t, joined.Var("raw"))
}

func TestIsVar(t *testing.T) {
	reg := componentVars(t)

	assert.True(t, IsVar(reg.Var("componentWidth")))
	assert.False(t, IsVar("var(--componentWidth)"))
	assert.False(t, IsVar(func() string { return "var(--x)" }))
	assert.False(t, IsVar(&Printer{}), "missing kind tag")
	assert.False(t, IsVar((*Printer)(nil)))
	assert.False(t, IsVar(nil))
	assert.False(t, IsVar(Px(1)))
}
