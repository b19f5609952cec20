package nomina

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS - Quantity of worked/transferable hours
// =============================================================================

// Hours is a decimal-backed quantity of hours. All hour math in the engine
// goes through this type so that repeated transfers cannot accumulate
// floating-point drift.
type Hours struct {
	Value decimal.Decimal
}

var half = decimal.NewFromFloat(0.5)

func ZeroHours() Hours                       { return Hours{Value: decimal.Zero} }
func HoursOf(v float64) Hours                { return Hours{Value: decimal.NewFromFloat(v)} }
func HoursFromDecimal(d decimal.Decimal) Hours { return Hours{Value: d} }

func (h Hours) Add(o Hours) Hours { return Hours{Value: h.Value.Add(o.Value)} }
func (h Hours) Sub(o Hours) Hours { return Hours{Value: h.Value.Sub(o.Value)} }
func (h Hours) IsZero() bool      { return h.Value.IsZero() }
func (h Hours) IsPositive() bool  { return h.Value.IsPositive() }

func (h Hours) Min(o Hours) Hours {
	if h.LessThan(o) {
		return h
	}
	return o
}
func (h Hours) LessThan(o Hours) bool           { return h.Value.LessThan(o.Value) }
func (h Hours) GreaterThan(o Hours) bool        { return h.Value.GreaterThan(o.Value) }
func (h Hours) GreaterThanOrEqual(o Hours) bool { return h.Value.GreaterThanOrEqual(o.Value) }
func (h Hours) Equal(o Hours) bool              { return h.Value.Equal(o.Value) }

// Round applies the half-up convention used everywhere hours are finalized:
// floor(x*100 + 0.5) / 100. Idempotent: Round(Round(x)) == Round(x).
func (h Hours) Round() Hours {
	return Hours{Value: h.Value.Shift(2).Add(half).Floor().Shift(-2)}
}

func (h Hours) Float64() float64 {
	f, _ := h.Value.Float64()
	return f
}

func (h Hours) String() string { return h.Value.String() }

// ParseHours converts a loosely-typed hour value into Hours. Accepts both
// "." and "," as decimal separator. Nil or unparseable values become zero,
// never an error.
func ParseHours(v any) Hours {
	switch x := v.(type) {
	case nil:
		return ZeroHours()
	case float64:
		return HoursOf(x)
	case float32:
		return HoursOf(float64(x))
	case int:
		return Hours{Value: decimal.NewFromInt(int64(x))}
	case int64:
		return Hours{Value: decimal.NewFromInt(x)}
	case decimal.Decimal:
		return Hours{Value: x}
	default:
		s := strings.TrimSpace(stringify(v))
		if s == "" {
			return ZeroHours()
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return ZeroHours()
		}
		return Hours{Value: d}
	}
}
