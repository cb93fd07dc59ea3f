package esincss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitValue_String(t *testing.T) {
	tests := []struct {
		name string
		val  UnitValue
		want string
	}{
		{"px", Px(10), "10px"},
		{"fractional rem", Rem(1.5), "1.5rem"},
		{"negative em", Em(-2), "-2em"},
		{"negative zero", Px(math.Copysign(0, -1)), "0px"},
		{"percent", Pct(33.3), "33.3%"},
		{"fraction percent", PctF(0.5), "50%"},
		{"fraction viewport width", VwF(1), "100vw"},
		{"seconds to ms", MsSec(1.5), "1500ms"},
		{"turns to deg", DegTurn(0.5), "180deg"},
		{"inches to cm", CmIn(1), "2.54cm"},
		{"custom unit", UnitVal(2, "lh"), "2lh"},
		{"fr", Fr(1), "1fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.val.String())
		})
	}
}

func TestUnitConversions(t *testing.T) {
	assert.InDelta(t, 90, DegGrad(100).Value, 1e-9)
	assert.InDelta(t, 180, DegRad(math.Pi).Value, 1e-9)
	assert.InDelta(t, 0.1, CmMm(1).Value, 1e-9)
	assert.InDelta(t, 2.54, CmPt(72).Value, 1e-6)
	assert.InDelta(t, 2.54, CmPc(6).Value, 1e-6)
}

func TestUnitOf(t *testing.T) {
	unit, ok := UnitOf(Vmin(3))
	assert.True(t, ok)
	assert.Equal(t, "vmin", unit)

	unit, ok = UnitOf(&UnitValue{Value: 1, Unit: "ch"})
	assert.True(t, ok)
	assert.Equal(t, "ch", unit)

	_, ok = UnitOf((*UnitValue)(nil))
	assert.False(t, ok)

	_, ok = UnitOf("10px")
	assert.False(t, ok, "strings are not unit values")
}
