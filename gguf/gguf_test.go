package gguf_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AIOxide/aiogguf/gguf"
)

// writeString writes a GGUF string: u64 length followed by the bytes.
func writeString(buf *bytes.Buffer, s string) {
	_ = binary.Write(buf, binary.LittleEndian, uint64(len(s)))
	buf.WriteString(s)
}

func writeKVU32(buf *bytes.Buffer, key string, v uint32) {
	writeString(buf, key)
	_ = binary.Write(buf, binary.LittleEndian, uint32(4)) // u32
	_ = binary.Write(buf, binary.LittleEndian, v)
}

func createTestFile(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("GGUF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(3))
	_ = binary.Write(&buf, binary.LittleEndian, uint64(1)) // tensors
	_ = binary.Write(&buf, binary.LittleEndian, uint64(7)) // metadata

	writeString(&buf, "general.architecture")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(8)) // string
	writeString(&buf, "qwen2")
	writeKVU32(&buf, "qwen2.vocab_size", 151936)
	writeKVU32(&buf, "qwen2.context_length", 32768)
	writeKVU32(&buf, "qwen2.block_count", 24)
	writeKVU32(&buf, "qwen2.embedding_length", 896)
	writeKVU32(&buf, "qwen2.feed_forward_length", 4864)
	writeKVU32(&buf, "qwen2.attention.head_count", 14)

	writeString(&buf, "token_embd.weight")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint64(896))
	_ = binary.Write(&buf, binary.LittleEndian, uint64(151936))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(8)) // Q8_0
	_ = binary.Write(&buf, binary.LittleEndian, uint64(0))

	path := filepath.Join(t.TempDir(), "qwen2.gguf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestOpen(t *testing.T) {
	f, err := gguf.Open(createTestFile(t))
	require.NoError(t, err)

	assert.Equal(t, uint32(3), f.Header.Version)
	require.Len(t, f.Tensors, 1)
	assert.Equal(t, "Q8_0", f.Tensors[0].Type.String())
	assert.True(t, f.IsQuantized())

	cfg, err := f.ModelConfig()
	require.NoError(t, err)
	assert.Equal(t, "qwen2", cfg.Architecture)
	assert.Equal(t, uint64(151936), cfg.VocabSize)
	assert.Equal(t, uint32(64), cfg.HeadDimension())
	assert.True(t, cfg.IsSupportedArchitecture())
}

func TestParseInvalidMagic(t *testing.T) {
	_, err := gguf.Parse(bytes.NewReader([]byte("GGML\x03\x00\x00\x00")))
	require.Error(t, err)
	assert.ErrorIs(t, err, gguf.ErrInvalidMagic)

	var gerr *gguf.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, gguf.KindFormat, gerr.Kind)
}

func TestParseQuantizationType(t *testing.T) {
	q, err := gguf.ParseQuantizationType(12)
	require.NoError(t, err)
	assert.Equal(t, "Q4_K", q.String())

	_, err = gguf.ParseQuantizationType(4)
	assert.ErrorIs(t, err, gguf.ErrInvalidQuantizationType)
}

func TestOpenWithLimits(t *testing.T) {
	_, err := gguf.Open(createTestFile(t), gguf.WithMaxStringLength(8))
	assert.ErrorIs(t, err, gguf.ErrLimitExceeded)
}
