// Package esincss provides helpers for authoring CSS from Go with type-safe
// unit, color and custom property values.
//
// # Variables
//
// Declare a set of CSS custom properties and reference them by name:
//
//	theme, err := esincss.MakeVariables([]esincss.Entry{
//		{Name: "linkColor", Value: "#0055aa"},
//		{Name: "gutter", Value: esincss.Px(16)},
//	}, esincss.VariableOptions{})
//
//	theme.Declarations                  // "--linkColor: #0055aa;\n--gutter: 16px;\n"
//	theme.Var("gutter").String()        // "var(--gutter)"
//	theme.Var("gutter").Or("1rem")      // "var(--gutter, 1rem)"
//	theme.Var("gutter").Type()          // "size:px"
//	theme.Override([]esincss.Entry{{Name: "gutter", Value: esincss.Px(8)}})
//
// Registries can be combined with JoinVariables.
//
// # Writing CSS
//
// CSS concatenates strings, units, colors and variable printers:
//
//	esincss.CSS(":root {\n", theme.Declarations, "}\n",
//		"a { color: ", theme.Var("linkColor"), "; }\n")
//
// # CLI Tool
//
// The esincss CLI renders stylesheet templates that use these helpers and
// writes the resulting .css files. Install with:
//
//	go install github.com/yacobolo/esincss/cmd/esincss@latest
package esincss
