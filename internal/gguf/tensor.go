package gguf

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// TensorInfo describes a tensor in the file. Offset is relative to the
// tensor data section and is not checked against it.
type TensorInfo struct {
	Name       string
	Dimensions []uint64
	Type       QuantizationType
	Offset     uint64
}

// weightMarkers are name fragments used by common exporters for learned
// parameters.
var weightMarkers = []string{"weight", "embed", "norm", "attn", "ffn", "mlp"}

// layerPrefixes are tried in order by LayerNumber.
var layerPrefixes = []string{"layers.", "blocks."}

func (r *reader) readTensorInfo() (TensorInfo, error) {
	var t TensorInfo

	name, err := r.readString()
	if err != nil {
		return t, fmt.Errorf("read tensor name: %w", err)
	}
	t.Name = name

	nDims, err := r.readU32()
	if err != nil {
		return t, fmt.Errorf("read ndims: %w", err)
	}
	if nDims > MaxDimensions {
		e := formatError(ErrInvalidTensorDimensions)
		e.NDims = nDims
		return t, e
	}

	t.Dimensions = make([]uint64, nDims)
	for i := range t.Dimensions {
		if t.Dimensions[i], err = r.readU64(); err != nil {
			return t, fmt.Errorf("read dimension %d: %w", i, err)
		}
	}

	code, err := r.readU32()
	if err != nil {
		return t, fmt.Errorf("read type: %w", err)
	}
	if t.Type, err = ParseQuantizationType(code); err != nil {
		return t, err
	}

	if t.Offset, err = r.readU64(); err != nil {
		return t, fmt.Errorf("read offset: %w", err)
	}

	return t, nil
}

// NumElements returns the total number of elements in the tensor, or 0
// for a tensor without dimensions. The product wraps on overflow; use
// SizeBytes for an overflow-safe size.
func (t *TensorInfo) NumElements() uint64 {
	if len(t.Dimensions) == 0 {
		return 0
	}
	n := uint64(1)
	for _, d := range t.Dimensions {
		n *= d
	}
	return n
}

// SizeBytes estimates the storage size of the tensor data:
// elements * bits-per-weight / 8, rounded up to a whole byte.
// The arithmetic is exact; results beyond uint64 saturate.
func (t *TensorInfo) SizeBytes() uint64 {
	if len(t.Dimensions) == 0 {
		return 0
	}

	n := big.NewInt(1)
	for _, d := range t.Dimensions {
		n.Mul(n, new(big.Int).SetUint64(d))
	}

	// bits/8 = sixteenths/128; add 127 to round up.
	n.Mul(n, new(big.Int).SetUint64(t.Type.sixteenthBits()))
	n.Add(n, big.NewInt(127))
	n.Rsh(n, 7)

	if !n.IsUint64() {
		return math.MaxUint64
	}
	return n.Uint64()
}

// ShapeString formats the dimensions as "[a, b, c]".
func (t *TensorInfo) ShapeString() string {
	parts := make([]string, len(t.Dimensions))
	for i, d := range t.Dimensions {
		parts[i] = strconv.FormatUint(d, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IsWeightTensor reports whether the name looks like a learned parameter.
// This is a naming-convention heuristic only.
func (t *TensorInfo) IsWeightTensor() bool {
	for _, m := range weightMarkers {
		if strings.Contains(t.Name, m) {
			return true
		}
	}
	return false
}

// LayerNumber extracts N from names containing "layers.N." or
// "blocks.N.". The "layers." form is tried first. N is a decimal u32 and
// may carry one leading '+'.
func (t *TensorInfo) LayerNumber() (uint32, bool) {
	for _, prefix := range layerPrefixes {
		i := strings.Index(t.Name, prefix)
		if i < 0 {
			continue
		}
		rest := t.Name[i+len(prefix):]
		num, _, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(num, "+"), 10, 32)
		if err != nil {
			continue
		}
		return uint32(n), true
	}
	return 0, false
}
