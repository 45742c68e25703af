package gguf

import (
	"bytes"
	"encoding/binary"
	"math"
)

// ggufBuilder writes little-endian GGUF fixtures in memory.
type ggufBuilder struct {
	buf bytes.Buffer
}

func (b *ggufBuilder) bytes() []byte { return b.buf.Bytes() }

func (b *ggufBuilder) reader() *bytes.Reader { return bytes.NewReader(b.buf.Bytes()) }

func (b *ggufBuilder) raw(p ...byte) *ggufBuilder {
	b.buf.Write(p)
	return b
}

func (b *ggufBuilder) u8(v uint8) *ggufBuilder {
	b.buf.WriteByte(v)
	return b
}

func (b *ggufBuilder) u16(v uint16) *ggufBuilder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *ggufBuilder) u32(v uint32) *ggufBuilder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *ggufBuilder) u64(v uint64) *ggufBuilder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *ggufBuilder) f32(v float32) *ggufBuilder {
	return b.u32(math.Float32bits(v))
}

func (b *ggufBuilder) f64(v float64) *ggufBuilder {
	return b.u64(math.Float64bits(v))
}

func (b *ggufBuilder) str(s string) *ggufBuilder {
	b.u64(uint64(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *ggufBuilder) header(tensors, kvs uint64) *ggufBuilder {
	b.buf.WriteString(Magic)
	return b.u32(Version3).u64(tensors).u64(kvs)
}

// kv writes a key and its type tag; the caller writes the value.
func (b *ggufBuilder) kv(key string, t ValueType) *ggufBuilder {
	return b.str(key).u32(uint32(t))
}

func (b *ggufBuilder) kvString(key, v string) *ggufBuilder {
	return b.kv(key, ValueTypeString).str(v)
}

func (b *ggufBuilder) kvU32(key string, v uint32) *ggufBuilder {
	return b.kv(key, ValueTypeUint32).u32(v)
}

func (b *ggufBuilder) kvU64(key string, v uint64) *ggufBuilder {
	return b.kv(key, ValueTypeUint64).u64(v)
}

func (b *ggufBuilder) kvF32(key string, v float32) *ggufBuilder {
	return b.kv(key, ValueTypeFloat32).f32(v)
}

func (b *ggufBuilder) kvStrings(key string, vs []string) *ggufBuilder {
	b.kv(key, ValueTypeArray).u32(uint32(ValueTypeString)).u64(uint64(len(vs)))
	for _, s := range vs {
		b.str(s)
	}
	return b
}

func (b *ggufBuilder) tensor(name string, dims []uint64, q QuantizationType, offset uint64) *ggufBuilder {
	b.str(name).u32(uint32(len(dims)))
	for _, d := range dims {
		b.u64(d)
	}
	return b.u32(uint32(q)).u64(offset)
}

// metadataOf builds a store directly, without going through the decoder.
func metadataOf(pairs ...any) *Metadata {
	md := NewMetadata()
	for i := 0; i+1 < len(pairs); i += 2 {
		md.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return md
}
