package esincss

import (
	"reflect"
	"strings"
)

// CSS concatenates its parts into a raw CSS string.
//
// nil, false and "" parts print nothing, while 0 prints "0". Slices are
// joined with single spaces after dropping their empty items; []byte is
// text, not a slice. func() string parts are called. Everything else
// prints via its String method or its Go number formatting.
//
//	esincss.CSS(`.btn { padding: `, esincss.Px(8), `; color: `, vars.Var("fg"), `; }`)
func CSS(parts ...any) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(cssPart(part))
	}
	return b.String()
}

func cssPart(v any) string {
	if isOmitted(v) {
		return ""
	}
	switch val := v.(type) {
	case func() string:
		return val()
	case []byte:
		return string(val)
	case []string:
		return joinParts(len(val), func(i int) any { return val[i] })
	case []any:
		return joinParts(len(val), func(i int) any { return val[i] })
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice {
		return joinParts(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	}
	return stringify(v)
}

func joinParts(n int, at func(int) any) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if s := cssPart(at(i)); s != "" {
			items = append(items, s)
		}
	}
	return strings.Join(items, " ")
}
