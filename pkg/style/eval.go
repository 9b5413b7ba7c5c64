package style

import (
	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// FromSymbol evaluates property key of a style symbol. Builtin calls are
// resolved from the style's scope. Any combination of key and value shape
// that does not map to a typed value yields Empty.
func FromSymbol(table *symbols.Table, sym *symbols.Symbol, key string) Value {
	if table == nil || sym == nil {
		return Empty{}
	}
	kind, ok := sym.Kind.(symbols.StyleKind)
	if !ok {
		return Empty{}
	}
	raw, ok := kind.Properties.Get(key)
	if !ok {
		return Empty{}
	}

	switch val := raw.(type) {
	case *syntax.Function:
		return fromFunction(table, sym, key, val)
	case *syntax.Integer:
		return fromNumber(key, float64(val.Value), val.Unit)
	case *syntax.Float:
		return fromNumber(key, val.Value, val.Unit)
	case *syntax.Ident:
		return fromIdent(key, val.Name())
	default:
		return Empty{}
	}
}

func fromFunction(table *symbols.Table, sym *symbols.Symbol, key string, fn *syntax.Function) Value {
	result, err := table.Call(sym.ID, fn)
	if err != nil {
		return Empty{}
	}
	tuple, ok := result.(*syntax.Tuple)
	if !ok {
		return Empty{}
	}

	switch fn.Name() {
	case symbols.FuncRGB, symbols.FuncRGBA:
		c, ok := colorFromTuple(tuple)
		if !ok {
			return Empty{}
		}
		switch key {
		case KeyBackgroundColor:
			return BackgroundColor{Color: c}
		case KeyForegroundColor:
			return ForegroundColor{Color: c}
		case KeyBorderColor:
			return BorderColor{Color: c}
		}

	case symbols.FuncRect, symbols.FuncRectXY, symbols.FuncRectAll:
		r, ok := rectFromTuple(tuple)
		if !ok {
			return Empty{}
		}
		switch key {
		case KeyBorderWidth:
			return BorderWidth{Rect: r}
		case KeyPadding:
			return Padding{Rect: r}
		case KeyRadius:
			return Radius{Rect: r}
		}
	}
	return Empty{}
}

func fromNumber(key string, amount float64, unit syntax.Unit) Value {
	if key != KeyGap || unit != syntax.UnitPixel {
		return Empty{}
	}
	return Gap{Amount: UnitValue{Amount: amount, Unit: unit}}
}

func fromIdent(key, name string) Value {
	switch key {
	case KeyDirection:
		if d, ok := ParseDirection(name); ok {
			return DirectionStyle{Direction: d}
		}
	case KeyChildSizing:
		if s, ok := parseSizing(name); ok {
			return ChildSizing{Sizing: s}
		}
	case KeyAlign:
		if a, ok := parseAlignment(name); ok {
			return Align{Alignment: a}
		}
	}
	return Empty{}
}

// colorFromTuple reads 3 or 4 integer channels; alpha defaults to opaque.
func colorFromTuple(tuple *syntax.Tuple) (Color, bool) {
	if len(tuple.Values) < 3 || len(tuple.Values) > 4 {
		return Color{}, false
	}
	channels := [4]uint8{0, 0, 0, 0xff}
	for idx, item := range tuple.Values {
		integer, ok := item.(*syntax.Integer)
		if !ok {
			return Color{}, false
		}
		channels[idx] = uint8(min(integer.Value, 0xff))
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, true
}

// rectFromTuple reads four pixel lengths. Unitless edges are rejected.
func rectFromTuple(tuple *syntax.Tuple) (UnitRect, bool) {
	if len(tuple.Values) != 4 {
		return UnitRect{}, false
	}
	var edges [4]UnitValue
	for idx, item := range tuple.Values {
		integer, ok := item.(*syntax.Integer)
		if !ok || integer.Unit != syntax.UnitPixel {
			return UnitRect{}, false
		}
		edges[idx] = UnitValue{Amount: float64(integer.Value), Unit: integer.Unit}
	}
	return UnitRect{X0: edges[0], Y0: edges[1], X1: edges[2], Y1: edges[3]}, true
}
