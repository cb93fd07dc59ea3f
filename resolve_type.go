package esincss

import (
	"regexp"
	"strconv"
	"strings"
)

// Value type tags reported by ResolveType and Printer.Type.
const (
	TypeZero    = "zero"
	TypeNumber  = "number"
	TypePercent = "percent"
	TypeColor   = "color"
	TypeUnknown = "unknown"
)

var (
	plainNumberRe = regexp.MustCompile(`^[-+]?\d*\.?\d+$`)
	unitNumberRe  = regexp.MustCompile(`(?i)^[-+]?\d*\.?\d+(%|[a-z]+)$`)
)

var (
	sizeUnits = map[string]bool{
		"px": true, "rem": true, "em": true, "ch": true, "ex": true,
		"vw": true, "vh": true, "vmin": true, "vmax": true,
		"cm": true, "in": true, "mm": true, "pt": true, "pc": true, "m": true,
	}
	timeUnits  = map[string]bool{"ms": true, "s": true}
	angleUnits = map[string]bool{"deg": true, "turn": true, "rad": true, "grad": true}

	specialColors = map[string]bool{"currentColor": true}
)

// ResolveType classifies a variable value into a semantic CSS type tag:
// "zero", "number", "percent", "size:<unit>", "time:<unit>", "angle:<unit>",
// "color" or "unknown". The first matching rule wins.
func ResolveType(v any) string {
	if t := numberType(v); t != "" {
		return t
	}
	if t := unitType(v); t != "" {
		return t
	}
	if t := colorType(v); t != "" {
		return t
	}
	return TypeUnknown
}

func numberType(v any) string {
	n, ok := asNumber(v)
	if !ok {
		s, isStr := v.(string)
		if !isStr {
			return ""
		}
		s = strings.TrimSpace(s)
		if !plainNumberRe.MatchString(s) {
			return ""
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ""
		}
		n = f
	}
	if n == 0 {
		return TypeZero
	}
	return TypeNumber
}

func unitType(v any) string {
	unit, ok := UnitOf(v)
	if !ok {
		s, isStr := v.(string)
		if !isStr {
			return ""
		}
		m := unitNumberRe.FindStringSubmatch(strings.TrimSpace(s))
		if m == nil {
			return ""
		}
		unit = strings.ToLower(m[1])
	}

	switch {
	case unit == "%":
		return TypePercent
	case sizeUnits[unit]:
		return "size:" + unit
	case timeUnits[unit]:
		return "time:" + unit
	case angleUnits[unit]:
		return "angle:" + unit
	}
	return ""
}

func colorType(v any) string {
	switch val := v.(type) {
	case Color:
		return TypeColor
	case *Color:
		if val != nil {
			return TypeColor
		}
	case string:
		s := strings.TrimSpace(val)
		if specialColors[s] {
			return TypeColor
		}
		if s == "" {
			return ""
		}
		if _, err := parseCSSColor(s); err == nil {
			return TypeColor
		}
	}
	return ""
}
