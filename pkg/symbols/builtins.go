package symbols

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gosmf/pkg/syntax"
)

// ValueType is the type of a builtin parameter or result.
type ValueType uint8

// Value types.
const (
	TypeInt ValueType = iota
	TypeTuple
)

// String returns the type name used in signatures.
func (v ValueType) String() string {
	switch v {
	case TypeInt:
		return "int"
	case TypeTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// BuiltinFunc evaluates a builtin over already type-checked arguments.
type BuiltinFunc func(args []*syntax.Integer) syntax.Value

// Builtin names.
const (
	FuncRGB     = "rgb"
	FuncRGBA    = "rgba"
	FuncRect    = "rect"
	FuncRectXY  = "rect_xy"
	FuncRectAll = "rect_all"
)

// Errors returned by Call.
var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrNotFunction     = errors.New("symbol is not a function")
	ErrArity           = errors.New("wrong number of arguments")
	ErrArgumentType    = errors.New("wrong argument type")
)

const maxColorChannel = 255

type builtinDef struct {
	name string
	kind FunctionKind
}

func builtinDefs() []builtinDef {
	ints := func(n int) []ValueType {
		out := make([]ValueType, n)
		for i := range out {
			out[i] = TypeInt
		}
		return out
	}

	return []builtinDef{
		{name: FuncRGB, kind: FunctionKind{ArgTypes: ints(3), ReturnType: TypeTuple, ReturnLen: 3, Impl: color}},
		{name: FuncRGBA, kind: FunctionKind{ArgTypes: ints(4), ReturnType: TypeTuple, ReturnLen: 4, Impl: color}},
		{name: FuncRect, kind: FunctionKind{ArgTypes: ints(4), ReturnType: TypeTuple, ReturnLen: 4, Impl: rect}},
		{name: FuncRectXY, kind: FunctionKind{ArgTypes: ints(2), ReturnType: TypeTuple, ReturnLen: 4, Impl: rectXY}},
		{name: FuncRectAll, kind: FunctionKind{ArgTypes: ints(1), ReturnType: TypeTuple, ReturnLen: 4, Impl: rectAll}},
	}
}

// RegisterBuiltins inserts the builtin functions at the root of t.
func RegisterBuiltins(t *Table) {
	for _, def := range builtinDefs() {
		t.Insert(RootID, Symbol{Key: def.name, Name: def.name, Kind: def.kind})
	}
}

// Signature renders a function symbol as `name(int, int) -> tuple2`.
func Signature(name string, fn FunctionKind) string {
	params := make([]string, 0, len(fn.ArgTypes))
	for _, typ := range fn.ArgTypes {
		params = append(params, typ.String())
	}
	ret := fn.ReturnType.String()
	if fn.ReturnType == TypeTuple {
		ret = fmt.Sprintf("%s%d", ret, fn.ReturnLen)
	}
	return fmt.Sprintf("%s(%s) -> %s", name, strings.Join(params, ", "), ret)
}

// Call resolves fn by name from scope and evaluates it eagerly.
func (t *Table) Call(scope ID, fn *syntax.Function) (syntax.Value, error) {
	sym, ok := t.Resolve(scope, fn.Name())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, fn.Name())
	}
	kind, ok := sym.Kind.(FunctionKind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFunction, fn.Name())
	}

	values := fn.Args.Values()
	if len(values) != len(kind.ArgTypes) {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrArity, fn.Name(), len(kind.ArgTypes), len(values))
	}

	args := make([]*syntax.Integer, 0, len(values))
	for idx, value := range values {
		integer, isInt := value.(*syntax.Integer)
		if !isInt {
			return nil, fmt.Errorf("%w: %s argument %d must be %s", ErrArgumentType, fn.Name(), idx+1, kind.ArgTypes[idx])
		}
		args = append(args, integer)
	}
	return kind.Impl(args), nil
}

func color(args []*syntax.Integer) syntax.Value {
	out := make([]syntax.Value, 0, len(args))
	for _, arg := range args {
		clamped := *arg
		clamped.Value = min(clamped.Value, maxColorChannel)
		out = append(out, &clamped)
	}
	return &syntax.Tuple{Values: out}
}

func rect(args []*syntax.Integer) syntax.Value {
	return tuple(args[0], args[1], args[2], args[3])
}

func rectXY(args []*syntax.Integer) syntax.Value {
	return tuple(args[0], args[1], args[0], args[1])
}

func rectAll(args []*syntax.Integer) syntax.Value {
	return tuple(args[0], args[0], args[0], args[0])
}

func tuple(values ...*syntax.Integer) *syntax.Tuple {
	out := make([]syntax.Value, 0, len(values))
	for _, value := range values {
		copied := *value
		out = append(out, &copied)
	}
	return &syntax.Tuple{Values: out}
}
