package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "whitespace and trailing semicolons",
			input:    "p{color:red }\n\ni { color: blue; }  ",
			expected: "p{color:red}i{color:blue}",
		},
		{
			name:     "keeps important comments only",
			input:    "/*! retained */\n\n/* dropped */\np { color: red; }",
			expected: "/*! retained */p{color:red}",
		},
		{
			name:     "selector lists and combinators",
			input:    "a,\nb > c ,  d + e { margin : 0 }",
			expected: "a,b>c,d+e{margin:0}",
		},
		{
			name:     "commas inside functions",
			input:    ":is(a, b) > c, d { color: red }",
			expected: ":is(a,b)>c,d{color:red}",
		},
		{
			name:     "multiple declarations",
			input:    ".btn {\n  padding: 4px 8px;\n  color: rgba(0, 0, 0, .5);\n}\n",
			expected: ".btn{padding:4px 8px;color:rgba(0,0,0,.5)}",
		},
		{
			name:     "media queries",
			input:    "@media screen and (min-width: 600px) {\n  a { color: red; }\n}\n",
			expected: "@media screen and (min-width:600px){a{color:red}}",
		},
		{
			name:     "custom properties",
			input:    ":root {\n  --gap: 16px;\n  --fg: var(--brand);\n}\n",
			expected: ":root{--gap:16px;--fg:var(--brand)}",
		},
		{
			name:     "calc keeps operator spacing",
			input:    "a { width: calc(100% - 2px); }",
			expected: "a{width:calc(100% - 2px)}",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Minify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPrettify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "one declaration per line",
			input:    "/* comment */\np{color:red }\n\ni { color: blue; }  ",
			expected: "/* comment */\np {\n  color: red;\n}\ni {\n  color: blue;\n}\n",
		},
		{
			name:     "selector lists",
			input:    "a,b{margin:0}",
			expected: "a,\nb {\n  margin: 0;\n}\n",
		},
		{
			name:     "selector list with whitespace",
			input:    "a ,\n  b > c{margin:0}",
			expected: "a,\nb > c {\n  margin: 0;\n}\n",
		},
		{
			name:     "commas inside functions stay on one line",
			input:    ":is(a,b) > c, [data-x=\"1,2\"]{color:red}",
			expected: ":is(a, b) > c,\n[data-x=\"1,2\"] {\n  color: red;\n}\n",
		},
		{
			name:     "nested blocks",
			input:    "@media screen{a{color:red}}",
			expected: "@media screen {\n  a {\n    color: red;\n  }\n}\n",
		},
		{
			name:     "spaces after commas",
			input:    "a{color:rgba(0,0,0,.5)}",
			expected: "a {\n  color: rgba(0, 0, 0, .5);\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prettify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewProcessor(t *testing.T) {
	input := "/* comment */\np{color:red }"

	passthrough, err := NewProcessor(Options{}).Process(input)
	require.NoError(t, err)
	assert.Equal(t, input, passthrough)

	minified, err := NewProcessor(Options{Minify: true, Prettify: true}).Process(input)
	require.NoError(t, err)
	assert.Equal(t, "p{color:red}", minified, "minify wins over prettify")

	pretty, err := NewProcessor(Options{Prettify: true}).Process(input)
	require.NoError(t, err)
	assert.Equal(t, "/* comment */\np {\n  color: red;\n}\n", pretty)
}

func TestCompileString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected string
	}{
		{
			name:     "passthrough",
			input:    "p { color: red }\n",
			expected: "p { color: red }\n",
		},
		{
			name:     "banner",
			input:    "p{}",
			opts:     Options{Banner: "/* banner */"},
			expected: "/* banner */\np{}",
		},
		{
			name:     "footer replaces one trailing newline",
			input:    "p{}\n",
			opts:     Options{Footer: "/* footer */"},
			expected: "p{}\n/* footer */\n",
		},
		{
			name:     "footer without trailing newline",
			input:    "p{}",
			opts:     Options{Footer: "/* footer */"},
			expected: "p{}\n/* footer */\n",
		},
		{
			name:     "banner and footer around minified output",
			input:    "p { color: red; }\n",
			opts:     Options{Minify: true, Banner: "/*! v1 */", Footer: "/* end */"},
			expected: "/*! v1 */\np{color:red}\n/* end */\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileString(tt.input, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompileString_CustomProcessor(t *testing.T) {
	boom := errors.New("boom")
	_, err := CompileString("p{}", Options{Processor: ProcessorFunc(func(string) (string, error) {
		return "", boom
	})})
	assert.ErrorIs(t, err, boom)

	got, err := CompileString("p{}", Options{Minify: true, Processor: ProcessorFunc(func(css string) (string, error) {
		return css + "/* custom */", nil
	})})
	require.NoError(t, err)
	assert.Equal(t, "p{}/* custom */", got)
}
