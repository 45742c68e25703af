package gguf

import "fmt"

// QuantizationType identifies the storage encoding of a tensor.
// Note: Names use underscores to match GGML specification exactly (e.g., Q4_K, not Q4K).
//
//nolint:revive // Underscores in names match GGML specification.
type QuantizationType uint32

// GGML tensor types. The codes are sparse: 4 and 5 belonged to the
// removed Q4_2 and Q4_3 formats and are rejected.
//
//nolint:revive // Underscores in names match GGML specification.
const (
	QuantF32     QuantizationType = 0
	QuantF16     QuantizationType = 1
	QuantQ4_0    QuantizationType = 2
	QuantQ4_1    QuantizationType = 3
	QuantQ5_0    QuantizationType = 6
	QuantQ5_1    QuantizationType = 7
	QuantQ8_0    QuantizationType = 8
	QuantQ8_1    QuantizationType = 9
	QuantQ2_K    QuantizationType = 10
	QuantQ3_K    QuantizationType = 11
	QuantQ4_K    QuantizationType = 12
	QuantQ5_K    QuantizationType = 13
	QuantQ6_K    QuantizationType = 14
	QuantQ8_K    QuantizationType = 15
	QuantIQ2_XXS QuantizationType = 16
	QuantIQ2_XS  QuantizationType = 17
	QuantIQ3_XXS QuantizationType = 18
	QuantIQ1_S   QuantizationType = 19
	QuantIQ4_NL  QuantizationType = 20
	QuantIQ3_S   QuantizationType = 21
	QuantIQ2_S   QuantizationType = 22
	QuantIQ4_XS  QuantizationType = 23
	QuantI8      QuantizationType = 24
	QuantI16     QuantizationType = 25
	QuantI32     QuantizationType = 26
	QuantI64     QuantizationType = 27
	QuantF64     QuantizationType = 28
	QuantIQ1_M   QuantizationType = 29
)

// quantTrait contains metadata about a quantization type.
type quantTrait struct {
	Name          string
	Description   string
	BitsPerWeight float64 // Includes per-block scale overhead.
	Quantized     bool
}

// quantTraits is keyed by code; a missing key means the code is invalid.
var quantTraits = map[QuantizationType]quantTrait{
	QuantF32:     {Name: "F32", Description: "32-bit float", BitsPerWeight: 32},
	QuantF16:     {Name: "F16", Description: "16-bit float", BitsPerWeight: 16},
	QuantQ4_0:    {Name: "Q4_0", Description: "4-bit quantized (symmetric)", BitsPerWeight: 4.5, Quantized: true},
	QuantQ4_1:    {Name: "Q4_1", Description: "4-bit quantized (asymmetric)", BitsPerWeight: 4.5, Quantized: true},
	QuantQ5_0:    {Name: "Q5_0", Description: "5-bit quantized (symmetric)", BitsPerWeight: 5.5, Quantized: true},
	QuantQ5_1:    {Name: "Q5_1", Description: "5-bit quantized (asymmetric)", BitsPerWeight: 5.5, Quantized: true},
	QuantQ8_0:    {Name: "Q8_0", Description: "8-bit quantized (symmetric)", BitsPerWeight: 8.5, Quantized: true},
	QuantQ8_1:    {Name: "Q8_1", Description: "8-bit quantized (asymmetric)", BitsPerWeight: 8.5, Quantized: true},
	QuantQ2_K:    {Name: "Q2_K", Description: "2-bit K-quantized", BitsPerWeight: 2.5625, Quantized: true},
	QuantQ3_K:    {Name: "Q3_K", Description: "3-bit K-quantized", BitsPerWeight: 3.4375, Quantized: true},
	QuantQ4_K:    {Name: "Q4_K", Description: "4-bit K-quantized", BitsPerWeight: 4.5, Quantized: true},
	QuantQ5_K:    {Name: "Q5_K", Description: "5-bit K-quantized", BitsPerWeight: 5.5, Quantized: true},
	QuantQ6_K:    {Name: "Q6_K", Description: "6-bit K-quantized", BitsPerWeight: 6.5625, Quantized: true},
	QuantQ8_K:    {Name: "Q8_K", Description: "8-bit K-quantized", BitsPerWeight: 8.5, Quantized: true},
	QuantIQ2_XXS: {Name: "IQ2_XXS", Description: "2-bit IMatrix (extra small)", BitsPerWeight: 2.0625, Quantized: true},
	QuantIQ2_XS:  {Name: "IQ2_XS", Description: "2-bit IMatrix (small)", BitsPerWeight: 2.3125, Quantized: true},
	QuantIQ3_XXS: {Name: "IQ3_XXS", Description: "3-bit IMatrix (extra small)", BitsPerWeight: 3.0625, Quantized: true},
	QuantIQ1_S:   {Name: "IQ1_S", Description: "1-bit IMatrix (small)", BitsPerWeight: 1.5625, Quantized: true},
	QuantIQ4_NL:  {Name: "IQ4_NL", Description: "4-bit IMatrix (non-linear)", BitsPerWeight: 4.5, Quantized: true},
	QuantIQ3_S:   {Name: "IQ3_S", Description: "3-bit IMatrix (small)", BitsPerWeight: 3.4375, Quantized: true},
	QuantIQ2_S:   {Name: "IQ2_S", Description: "2-bit IMatrix (small)", BitsPerWeight: 2.5, Quantized: true},
	QuantIQ4_XS:  {Name: "IQ4_XS", Description: "4-bit IMatrix (extra small)", BitsPerWeight: 4.25, Quantized: true},
	QuantI8:      {Name: "I8", Description: "8-bit integer", BitsPerWeight: 8, Quantized: true},
	QuantI16:     {Name: "I16", Description: "16-bit integer", BitsPerWeight: 16, Quantized: true},
	QuantI32:     {Name: "I32", Description: "32-bit integer", BitsPerWeight: 32, Quantized: true},
	QuantI64:     {Name: "I64", Description: "64-bit integer", BitsPerWeight: 64, Quantized: true},
	QuantF64:     {Name: "F64", Description: "64-bit float", BitsPerWeight: 64},
	QuantIQ1_M:   {Name: "IQ1_M", Description: "1-bit IMatrix (medium)", BitsPerWeight: 1.75, Quantized: true},
}

// ParseQuantizationType validates a raw code read from a tensor descriptor.
func ParseQuantizationType(code uint32) (QuantizationType, error) {
	q := QuantizationType(code)
	if _, ok := quantTraits[q]; !ok {
		e := formatError(ErrInvalidQuantizationType)
		e.Code = code
		return 0, e
	}
	return q, nil
}

// IsQuantized returns false only for the full-precision float types.
// The integer types count as quantized.
func (q QuantizationType) IsQuantized() bool {
	return quantTraits[q].Quantized
}

// BitsPerWeight returns the average storage cost of one element,
// including block scale overhead (Q4_0 stores 32 weights in 18 bytes,
// hence 4.5).
func (q QuantizationType) BitsPerWeight() float64 {
	return quantTraits[q].BitsPerWeight
}

// Description returns a human readable description.
func (q QuantizationType) Description() string {
	if t, ok := quantTraits[q]; ok {
		return t.Description
	}
	return "unknown"
}

// String returns the GGML name of the type.
func (q QuantizationType) String() string {
	if t, ok := quantTraits[q]; ok {
		return t.Name
	}
	return fmt.Sprintf("unknown(%d)", uint32(q))
}

// Valid reports whether q is one of the defined codes.
func (q QuantizationType) Valid() bool {
	_, ok := quantTraits[q]
	return ok
}

// sixteenthBits returns BitsPerWeight*16. Every table entry is a
// multiple of 1/16, so the result is exact.
func (q QuantizationType) sixteenthBits() uint64 {
	return uint64(quantTraits[q].BitsPerWeight * 16)
}
