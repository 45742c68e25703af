package gguf

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a decoded metadata value. The set of implementations is closed:
// Uint8, Int8, Uint16, Int16, Uint32, Int32, Float32, Bool, String, Array,
// Uint64, Int64 and Float64.
type Value interface {
	Type() ValueType
	value()
}

type (
	Uint8   uint8
	Int8    int8
	Uint16  uint16
	Int16   int16
	Uint32  uint32
	Int32   int32
	Float32 float32
	Bool    bool
	String  string
	Uint64  uint64
	Int64   int64
	Float64 float64
)

// Array is a homogeneous sequence of values. Every element has type Elem,
// which may itself be ValueTypeArray.
type Array struct {
	Elem   ValueType
	Values []Value
}

func (Uint8) Type() ValueType   { return ValueTypeUint8 }
func (Int8) Type() ValueType    { return ValueTypeInt8 }
func (Uint16) Type() ValueType  { return ValueTypeUint16 }
func (Int16) Type() ValueType   { return ValueTypeInt16 }
func (Uint32) Type() ValueType  { return ValueTypeUint32 }
func (Int32) Type() ValueType   { return ValueTypeInt32 }
func (Float32) Type() ValueType { return ValueTypeFloat32 }
func (Bool) Type() ValueType    { return ValueTypeBool }
func (String) Type() ValueType  { return ValueTypeString }
func (Array) Type() ValueType   { return ValueTypeArray }
func (Uint64) Type() ValueType  { return ValueTypeUint64 }
func (Int64) Type() ValueType   { return ValueTypeInt64 }
func (Float64) Type() ValueType { return ValueTypeFloat64 }

func (Uint8) value()   {}
func (Int8) value()    {}
func (Uint16) value()  {}
func (Int16) value()   {}
func (Uint32) value()  {}
func (Int32) value()   {}
func (Float32) value() {}
func (Bool) value()    {}
func (String) value()  {}
func (Array) value()   {}
func (Uint64) value()  {}
func (Int64) value()   {}
func (Float64) value() {}

// Len returns the number of elements.
func (a Array) Len() int {
	return len(a.Values)
}

// readValue decodes one value of type t. Arrays recurse with their
// element type, so nested arrays decode to nested Array values.
func (r *reader) readValue(t ValueType) (Value, error) {
	switch t {
	case ValueTypeUint8:
		v, err := r.readU8()
		return Uint8(v), err
	case ValueTypeInt8:
		v, err := r.readU8()
		return Int8(v), err
	case ValueTypeUint16:
		v, err := r.readU16()
		return Uint16(v), err
	case ValueTypeInt16:
		v, err := r.readU16()
		return Int16(v), err
	case ValueTypeUint32:
		v, err := r.readU32()
		return Uint32(v), err
	case ValueTypeInt32:
		v, err := r.readU32()
		return Int32(v), err
	case ValueTypeFloat32:
		v, err := r.readF32()
		return Float32(v), err
	case ValueTypeBool:
		v, err := r.readU8()
		return Bool(v != 0), err
	case ValueTypeString:
		v, err := r.readString()
		return String(v), err
	case ValueTypeArray:
		return r.readArray()
	case ValueTypeUint64:
		v, err := r.readU64()
		return Uint64(v), err
	case ValueTypeInt64:
		v, err := r.readU64()
		return Int64(v), err
	case ValueTypeFloat64:
		v, err := r.readF64()
		return Float64(v), err
	default:
		_, err := parseValueType(uint32(t))
		return nil, err
	}
}

func (r *reader) readArray() (Value, error) {
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.maxDepth {
		return nil, formatError(fmt.Errorf("array nesting depth exceeds %d: %w", r.maxDepth, ErrLimitExceeded))
	}

	code, err := r.readU32()
	if err != nil {
		return nil, fmt.Errorf("read array element type: %w", err)
	}
	elem, err := parseValueType(code)
	if err != nil {
		return nil, err
	}

	n, err := r.readU64()
	if err != nil {
		return nil, fmt.Errorf("read array length: %w", err)
	}
	if r.maxArray > 0 && n > r.maxArray {
		return nil, formatError(fmt.Errorf("array length %d exceeds %d: %w", n, r.maxArray, ErrLimitExceeded))
	}

	values := make([]Value, 0, min(n, 1<<16))
	for i := uint64(0); i < n; i++ {
		v, err := r.readValue(elem)
		if err != nil {
			return nil, fmt.Errorf("read array element %d: %w", i, err)
		}
		values = append(values, v)
	}
	return Array{Elem: elem, Values: values}, nil
}

// kindName names the variant held by v, as used in type mismatch errors.
func kindName(v Value) string {
	switch v := v.(type) {
	case nil:
		return "none"
	case Array:
		return "array[" + v.Elem.String() + "]"
	default:
		return v.Type().String()
	}
}

// asUint32 accepts a u32, or narrows a u64 with a truncating cast.
func asUint32(v Value) (uint32, bool) {
	switch v := v.(type) {
	case Uint32:
		return uint32(v), true
	case Uint64:
		return uint32(v), true //nolint:gosec // G115: truncation is the documented coercion.
	default:
		return 0, false
	}
}

// asUint64 accepts a u64, or widens a u32.
func asUint64(v Value) (uint64, bool) {
	switch v := v.(type) {
	case Uint64:
		return uint64(v), true
	case Uint32:
		return uint64(v), true
	default:
		return 0, false
	}
}

func asString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

func asFloat32(v Value) (float32, bool) {
	f, ok := v.(Float32)
	return float32(f), ok
}

// Format renders v for display. Arrays longer than maxElems are shown as
// their first maxElems elements followed by an ellipsis; maxElems <= 0
// prints every element.
func Format(v Value, maxElems int) string {
	switch v := v.(type) {
	case Uint8:
		return strconv.FormatUint(uint64(v), 10)
	case Int8:
		return strconv.FormatInt(int64(v), 10)
	case Uint16:
		return strconv.FormatUint(uint64(v), 10)
	case Int16:
		return strconv.FormatInt(int64(v), 10)
	case Uint32:
		return strconv.FormatUint(uint64(v), 10)
	case Int32:
		return strconv.FormatInt(int64(v), 10)
	case Uint64:
		return strconv.FormatUint(uint64(v), 10)
	case Int64:
		return strconv.FormatInt(int64(v), 10)
	case Float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(v))
	case String:
		return strconv.Quote(string(v))
	case Array:
		n := len(v.Values)
		if maxElems > 0 && n > maxElems {
			n = maxElems
		}
		parts := make([]string, 0, n+1)
		for _, e := range v.Values[:n] {
			parts = append(parts, Format(e, maxElems))
		}
		if n < len(v.Values) {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(v.Values)-n))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", v)
	}
}
