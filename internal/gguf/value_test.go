package gguf

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, vt ValueType, b *ggufBuilder) Value {
	t.Helper()
	r := newReader(b.reader(), buildOptions(nil))
	v, err := r.readValue(vt)
	require.NoError(t, err)
	assert.Equal(t, int64(len(b.bytes())), r.off, "codec must consume exactly the encoded bytes")
	return v
}

func TestReadScalarValues(t *testing.T) {
	tests := []struct {
		name  string
		vt    ValueType
		build func(*ggufBuilder)
		want  Value
	}{
		{"u8", ValueTypeUint8, func(b *ggufBuilder) { b.u8(200) }, Uint8(200)},
		{"i8", ValueTypeInt8, func(b *ggufBuilder) { b.u8(0xff) }, Int8(-1)},
		{"u16", ValueTypeUint16, func(b *ggufBuilder) { b.u16(0xbeef) }, Uint16(0xbeef)},
		{"i16", ValueTypeInt16, func(b *ggufBuilder) { b.u16(0xfffe) }, Int16(-2)},
		{"u32", ValueTypeUint32, func(b *ggufBuilder) { b.u32(7) }, Uint32(7)},
		{"i32", ValueTypeInt32, func(b *ggufBuilder) { b.u32(math.MaxUint32) }, Int32(-1)},
		{"u64", ValueTypeUint64, func(b *ggufBuilder) { b.u64(1 << 40) }, Uint64(1 << 40)},
		{"i64", ValueTypeInt64, func(b *ggufBuilder) { b.u64(math.MaxUint64) }, Int64(-1)},
		{"f32", ValueTypeFloat32, func(b *ggufBuilder) { b.f32(1e-5) }, Float32(1e-5)},
		{"f64", ValueTypeFloat64, func(b *ggufBuilder) { b.f64(10000.5) }, Float64(10000.5)},
		{"bool false", ValueTypeBool, func(b *ggufBuilder) { b.u8(0) }, Bool(false)},
		{"bool nonzero", ValueTypeBool, func(b *ggufBuilder) { b.u8(2) }, Bool(true)},
		{"string", ValueTypeString, func(b *ggufBuilder) { b.str("héllo") }, String("héllo")},
		{"empty string", ValueTypeString, func(b *ggufBuilder) { b.str("") }, String("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &ggufBuilder{}
			tt.build(b)
			got := decodeValue(t, tt.vt, b)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.vt, got.Type())
		})
	}
}

func TestReadArray(t *testing.T) {
	b := &ggufBuilder{}
	b.u32(uint32(ValueTypeUint32)).u64(3).u32(7).u32(8).u32(9)

	got := decodeValue(t, ValueTypeArray, b)
	want := Array{Elem: ValueTypeUint32, Values: []Value{Uint32(7), Uint32(8), Uint32(9)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("array mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNestedArray(t *testing.T) {
	b := &ggufBuilder{}
	b.u32(uint32(ValueTypeArray)).u64(2)
	b.u32(uint32(ValueTypeUint32)).u64(3).u32(7).u32(8).u32(9)
	b.u32(uint32(ValueTypeString)).u64(1).str("x")

	got := decodeValue(t, ValueTypeArray, b)
	want := Array{Elem: ValueTypeArray, Values: []Value{
		Array{Elem: ValueTypeUint32, Values: []Value{Uint32(7), Uint32(8), Uint32(9)}},
		Array{Elem: ValueTypeString, Values: []Value{String("x")}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nested array mismatch (-want +got):\n%s", diff)
	}
}

func TestReadEmptyArray(t *testing.T) {
	b := &ggufBuilder{}
	b.u32(uint32(ValueTypeFloat32)).u64(0)

	got := decodeValue(t, ValueTypeArray, b)
	arr, ok := got.(Array)
	require.True(t, ok)
	assert.Equal(t, ValueTypeFloat32, arr.Elem)
	assert.Equal(t, 0, arr.Len())
}

func TestReadArrayInvalidElementType(t *testing.T) {
	b := &ggufBuilder{}
	b.u32(99).u64(1).u32(0)

	r := newReader(b.reader(), buildOptions(nil))
	_, err := r.readValue(ValueTypeArray)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValueType)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, uint32(99), gerr.Code)
	assert.Equal(t, "gguf: invalid value type: 99", gerr.Error())
}

func TestReadInvalidTopLevelType(t *testing.T) {
	r := newReader((&ggufBuilder{}).reader(), buildOptions(nil))
	_, err := r.readValue(ValueType(13))
	assert.ErrorIs(t, err, ErrInvalidValueType)
}

func TestReadStringInvalidUTF8(t *testing.T) {
	b := &ggufBuilder{}
	b.u64(3).raw('a', 0xc3, 0x28)

	r := newReader(b.reader(), buildOptions(nil))
	_, err := r.readValue(ValueTypeString)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestValueTypeString(t *testing.T) {
	assert.Equal(t, "u32", ValueTypeUint32.String())
	assert.Equal(t, "array", ValueTypeArray.String())
	assert.Equal(t, "unknown(13)", ValueType(13).String())
	assert.True(t, ValueTypeFloat64.Valid())
	assert.False(t, ValueType(13).Valid())
}

func TestFormat(t *testing.T) {
	arr := Array{Elem: ValueTypeInt32, Values: []Value{Int32(1), Int32(-2), Int32(3)}}

	assert.Equal(t, "[1, -2, 3]", Format(arr, 0))
	assert.Equal(t, "[1, -2, ... (1 more)]", Format(arr, 2))
	assert.Equal(t, `"llama"`, Format(String("llama"), 0))
	assert.Equal(t, "1e-05", Format(Float32(1e-5), 0))
	assert.Equal(t, "true", Format(Bool(true), 0))
	assert.Equal(t, "18446744073709551615", Format(Uint64(math.MaxUint64), 0))
}
