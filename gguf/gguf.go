// Copyright 2025 AIOxide. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gguf

import (
	"io"

	"github.com/AIOxide/aiogguf/internal/gguf"
)

// File is a decoded GGUF file: header, metadata and tensor descriptors.
type File = gguf.File

// Header is the fixed 20-byte file preamble.
type Header = gguf.Header

// Metadata is the ordered key/value store.
type Metadata = gguf.Metadata

// TensorInfo describes one tensor.
type TensorInfo = gguf.TensorInfo

// ModelConfig is the model configuration extracted from metadata.
type ModelConfig = gguf.ModelConfig

// QuantizationType identifies a tensor storage encoding.
type QuantizationType = gguf.QuantizationType

// ValueType is the tag of a metadata value.
type ValueType = gguf.ValueType

// Value is a decoded metadata value.
type Value = gguf.Value

// Array is a homogeneous metadata array.
type Array = gguf.Array

// Scalar metadata values.
type (
	Uint8   = gguf.Uint8
	Int8    = gguf.Int8
	Uint16  = gguf.Uint16
	Int16   = gguf.Int16
	Uint32  = gguf.Uint32
	Int32   = gguf.Int32
	Float32 = gguf.Float32
	Bool    = gguf.Bool
	String  = gguf.String
	Uint64  = gguf.Uint64
	Int64   = gguf.Int64
	Float64 = gguf.Float64
)

// Error is the error type returned by every operation in this package.
type Error = gguf.Error

// ErrorKind classifies an Error.
type ErrorKind = gguf.ErrorKind

// Option configures Open and Parse.
type Option = gguf.Option

// Error kinds.
const (
	KindIO           = gguf.KindIO
	KindFormat       = gguf.KindFormat
	KindLookup       = gguf.KindLookup
	KindTypeMismatch = gguf.KindTypeMismatch
	KindConfig       = gguf.KindConfig
)

// Error sentinels.
var (
	ErrIO               = gguf.ErrIO
	ErrFormat           = gguf.ErrFormat
	ErrKeyNotFound      = gguf.ErrKeyNotFound
	ErrTypeMismatch     = gguf.ErrTypeMismatch
	ErrIncompleteConfig = gguf.ErrIncompleteConfig

	ErrInvalidMagic            = gguf.ErrInvalidMagic
	ErrUnsupportedVersion      = gguf.ErrUnsupportedVersion
	ErrInvalidValueType        = gguf.ErrInvalidValueType
	ErrInvalidQuantizationType = gguf.ErrInvalidQuantizationType
	ErrInvalidUTF8             = gguf.ErrInvalidUTF8
	ErrInvalidTensorDimensions = gguf.ErrInvalidTensorDimensions
	ErrLimitExceeded           = gguf.ErrLimitExceeded
)

// Open parses the GGUF file at path.
func Open(path string, opts ...Option) (*File, error) {
	return gguf.ParseFile(path, opts...)
}

// Parse decodes a GGUF stream from r. Reading stops at the end of the
// tensor descriptor table.
func Parse(r io.Reader, opts ...Option) (*File, error) {
	return gguf.Parse(r, opts...)
}

// FromMetadata extracts a ModelConfig from already decoded metadata.
func FromMetadata(md *Metadata) (*ModelConfig, error) {
	return gguf.FromMetadata(md)
}

// ParseQuantizationType validates a raw quantization code.
func ParseQuantizationType(code uint32) (QuantizationType, error) {
	return gguf.ParseQuantizationType(code)
}

// Format renders a metadata value, showing at most maxElems array
// elements (0 for all).
func Format(v Value, maxElems int) string {
	return gguf.Format(v, maxElems)
}

// WithMaxStringLength caps decoded string lengths. 0 disables the check.
var WithMaxStringLength = gguf.WithMaxStringLength

// WithMaxArrayLength caps decoded array lengths. 0 disables the check.
var WithMaxArrayLength = gguf.WithMaxArrayLength

// WithMaxArrayDepth caps array nesting. n <= 0 selects the default of 64.
var WithMaxArrayDepth = gguf.WithMaxArrayDepth

// WithLogger sets the logger used for debug output.
var WithLogger = gguf.WithLogger
