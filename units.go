package esincss

import "math"

// UnitValue is a number with a CSS unit attached, e.g. 10px or 1.5rem.
type UnitValue struct {
	Value float64
	Unit  string
}

// String prints the value immediately followed by its unit.
func (u UnitValue) String() string {
	return formatNumber(u.Value) + u.Unit
}

// UnitVal creates a UnitValue with a custom unit.
func UnitVal(value float64, unit string) UnitValue {
	return UnitValue{Value: value, Unit: unit}
}

// UnitOf returns the unit of a UnitValue, or false for anything else.
func UnitOf(v any) (string, bool) {
	switch u := v.(type) {
	case UnitValue:
		return u.Unit, true
	case *UnitValue:
		if u != nil {
			return u.Unit, true
		}
	}
	return "", false
}

// Px returns n pixels.
func Px(n float64) UnitValue { return UnitVal(n, "px") }

// Rem returns n root em units.
func Rem(n float64) UnitValue { return UnitVal(n, "rem") }

// Em returns n em units.
func Em(n float64) UnitValue { return UnitVal(n, "em") }

// Ch returns n ch units (width of the "0" glyph).
func Ch(n float64) UnitValue { return UnitVal(n, "ch") }

// Ex returns n ex units (x-height).
func Ex(n float64) UnitValue { return UnitVal(n, "ex") }

// Pct returns n percent.
func Pct(n float64) UnitValue { return UnitVal(n, "%") }

// Vw returns n percent of the viewport width.
func Vw(n float64) UnitValue { return UnitVal(n, "vw") }

// Vh returns n percent of the viewport height.
func Vh(n float64) UnitValue { return UnitVal(n, "vh") }

// Vmin returns n percent of the smaller viewport dimension.
func Vmin(n float64) UnitValue { return UnitVal(n, "vmin") }

// Vmax returns n percent of the larger viewport dimension.
func Vmax(n float64) UnitValue { return UnitVal(n, "vmax") }

// Ms returns n milliseconds.
func Ms(n float64) UnitValue { return UnitVal(n, "ms") }

// Cm returns n centimeters.
func Cm(n float64) UnitValue { return UnitVal(n, "cm") }

// Deg returns n degrees.
func Deg(n float64) UnitValue { return UnitVal(n, "deg") }

// Fr returns n grid fractions.
func Fr(n float64) UnitValue { return UnitVal(n, "fr") }

// PctF converts a 0..1 fraction to percent.
func PctF(n float64) UnitValue { return Pct(n * 100) }

// VwF converts a 0..1 fraction of the viewport width to vw.
func VwF(n float64) UnitValue { return Vw(n * 100) }

// VhF converts a 0..1 fraction of the viewport height to vh.
func VhF(n float64) UnitValue { return Vh(n * 100) }

// VminF converts a 0..1 fraction to vmin.
func VminF(n float64) UnitValue { return Vmin(n * 100) }

// VmaxF converts a 0..1 fraction to vmax.
func VmaxF(n float64) UnitValue { return Vmax(n * 100) }

// MsSec converts seconds to milliseconds.
func MsSec(n float64) UnitValue { return Ms(n * 1000) }

// CmIn converts inches to centimeters.
func CmIn(n float64) UnitValue { return Cm(n * 2.54) }

// CmMm converts millimeters to centimeters.
func CmMm(n float64) UnitValue { return Cm(n * 0.1) }

// CmPt converts points to centimeters.
func CmPt(n float64) UnitValue { return Cm(n * 0.0352777778) }

// CmPc converts picas to centimeters.
func CmPc(n float64) UnitValue { return Cm(n * 0.42333333333) }

// DegTurn converts turns to degrees.
func DegTurn(n float64) UnitValue { return Deg(n * 360) }

// DegGrad converts gradians to degrees.
func DegGrad(n float64) UnitValue { return Deg(n * 0.9) }

// DegRad converts radians to degrees.
func DegRad(n float64) UnitValue { return Deg(n * 180 / math.Pi) }
