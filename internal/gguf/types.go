// Package gguf decodes GGUF model files and derives model configuration
// from their metadata.
//
// GGUF (GGML Universal Format) is the container used by llama.cpp to ship
// quantized LLM weights. A file starts with a fixed header, followed by a
// typed key/value metadata section and a tensor descriptor table. This
// package reads those three sections; tensor payloads are never touched.
//
// Specification: https://github.com/ggerganov/ggml/blob/master/docs/gguf.md
package gguf

import "fmt"

// Magic is the four-byte file signature.
const Magic = "GGUF"

// Version3 is the only supported container version.
const Version3 uint32 = 3

// HeaderSize is the byte length of the fixed preamble.
const HeaderSize = 20

// DefaultAlignment is the default alignment for tensor data.
const DefaultAlignment = 32

// MaxDimensions is the largest tensor rank the format allows.
const MaxDimensions = 4

// Default sanity limits applied while decoding metadata.
const (
	DefaultMaxStringLength = 16 << 20
	DefaultMaxArrayLength  = 100_000_000
	DefaultMaxArrayDepth   = 64
)

// ValueType represents the type of a metadata value.
type ValueType uint32

// Metadata value types as defined in GGUF specification.
const (
	ValueTypeUint8   ValueType = 0
	ValueTypeInt8    ValueType = 1
	ValueTypeUint16  ValueType = 2
	ValueTypeInt16   ValueType = 3
	ValueTypeUint32  ValueType = 4
	ValueTypeInt32   ValueType = 5
	ValueTypeFloat32 ValueType = 6
	ValueTypeBool    ValueType = 7
	ValueTypeString  ValueType = 8
	ValueTypeArray   ValueType = 9
	ValueTypeUint64  ValueType = 10
	ValueTypeInt64   ValueType = 11
	ValueTypeFloat64 ValueType = 12
)

var valueTypeNames = map[ValueType]string{
	ValueTypeUint8:   "u8",
	ValueTypeInt8:    "i8",
	ValueTypeUint16:  "u16",
	ValueTypeInt16:   "i16",
	ValueTypeUint32:  "u32",
	ValueTypeInt32:   "i32",
	ValueTypeFloat32: "f32",
	ValueTypeBool:    "bool",
	ValueTypeString:  "string",
	ValueTypeArray:   "array",
	ValueTypeUint64:  "u64",
	ValueTypeInt64:   "i64",
	ValueTypeFloat64: "f64",
}

// String returns the string representation of the value type.
func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint32(t))
}

// Valid reports whether t is one of the 13 defined tags.
func (t ValueType) Valid() bool {
	return t <= ValueTypeFloat64
}

// parseValueType validates a raw tag read from the file.
func parseValueType(code uint32) (ValueType, error) {
	t := ValueType(code)
	if !t.Valid() {
		e := formatError(ErrInvalidValueType)
		e.Code = code
		return 0, e
	}
	return t, nil
}

// Header represents the GGUF file header.
type Header struct {
	Magic           [4]byte
	Version         uint32
	TensorCount     uint64
	MetadataKVCount uint64
}
