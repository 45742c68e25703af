package gguf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func llamaMetadata() *Metadata {
	return metadataOf(
		"general.architecture", String("llama"),
		"general.name", String("tiny-llama"),
		"general.vocab_size", Uint32(32000),
		"llama.context_length", Uint32(4096),
		"llama.block_count", Uint32(32),
		"llama.embedding_length", Uint32(4096),
		"llama.feed_forward_length", Uint32(11008),
		"llama.attention.head_count", Uint32(32),
		"llama.attention.head_count_kv", Uint32(8),
		"llama.attention.layer_norm_rms_epsilon", Float32(1e-5),
		"llama.rope.freq_base", Float32(10000),
		"tokenizer.ggml.model", String("llama"),
	)
}

func TestFromMetadata(t *testing.T) {
	cfg, err := FromMetadata(llamaMetadata())
	require.NoError(t, err)

	assert.Equal(t, "llama", cfg.Architecture)
	assert.Equal(t, uint64(32000), cfg.VocabSize)
	assert.Equal(t, uint64(4096), cfg.ContextLength)
	assert.Equal(t, uint32(32), cfg.BlockCount)
	assert.Equal(t, uint32(4096), cfg.EmbeddingLength)
	assert.Equal(t, uint32(11008), cfg.FeedForwardLength)
	assert.Equal(t, uint32(32), cfg.AttentionHeadCount)

	require.NotNil(t, cfg.AttentionHeadCountKV)
	assert.Equal(t, uint32(8), *cfg.AttentionHeadCountKV)
	require.NotNil(t, cfg.AttentionLayerNormRMSEpsilon)
	assert.Equal(t, float32(1e-5), *cfg.AttentionLayerNormRMSEpsilon)
	require.NotNil(t, cfg.RopeFreqBase)
	assert.Equal(t, float32(10000), *cfg.RopeFreqBase)
	assert.Nil(t, cfg.RopeDimensionCount)
	assert.Empty(t, cfg.RopeScalingType)

	assert.Equal(t, "llama", cfg.TokenizerModel)
	assert.Equal(t, "tiny-llama", cfg.Name)
	assert.Empty(t, cfg.License)
	assert.Nil(t, cfg.Tokens)
	assert.Nil(t, cfg.Scores)
	assert.Nil(t, cfg.TokenTypes)

	assert.True(t, cfg.IsSupportedArchitecture())
	assert.Equal(t, uint32(128), cfg.HeadDimension())
	assert.Equal(t, uint64(5295570944), cfg.EstimatedParamCount())
}

func TestFromMetadataVocabFallback(t *testing.T) {
	tokens := make([]Value, 32003)
	for i := range tokens {
		tokens[i] = String("t")
	}

	md := llamaMetadata()
	md.Set("general.vocab_size", String("not a number"))
	md.Set("tokenizer.ggml.tokens", Array{Elem: ValueTypeString, Values: tokens})

	cfg, err := FromMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, uint64(32003), cfg.VocabSize)

	md.Set("llama.vocab_size", Uint64(50000))
	cfg, err = FromMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, uint64(50000), cfg.VocabSize)
}

func TestFromMetadataContextLengthPrefersGeneral(t *testing.T) {
	md := llamaMetadata()
	md.Set("general.context_length", Uint64(8192))

	cfg, err := FromMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, uint64(8192), cfg.ContextLength)
}

func TestFromMetadataMissingField(t *testing.T) {
	md := metadataOf(
		"general.architecture", String("llama"),
		"general.vocab_size", Uint32(32000),
		"llama.context_length", Uint32(4096),
		"llama.embedding_length", Uint32(4096),
	)

	_, err := FromMetadata(md)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteConfig)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, KindConfig, gerr.Kind)
	assert.Equal(t, "block_count", gerr.Field)
	assert.Equal(t, "gguf: model configuration incomplete: missing block_count", err.Error())
}

func TestFromMetadataMissingVocab(t *testing.T) {
	md := metadataOf("general.architecture", String("llama"))

	_, err := FromMetadata(md)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "vocab_size", gerr.Field)
}

func TestFromMetadataMissingArchitecture(t *testing.T) {
	_, err := FromMetadata(NewMetadata())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteConfig)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = FromMetadata(metadataOf("general.architecture", Uint32(1)))
	assert.ErrorIs(t, err, ErrIncompleteConfig)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFromMetadataNarrowsUint64Counts(t *testing.T) {
	md := llamaMetadata()
	md.Set("llama.block_count", Uint64(40))

	cfg, err := FromMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, uint32(40), cfg.BlockCount)
}

func TestIsSupportedArchitecture(t *testing.T) {
	for _, arch := range []string{"llama", "mistral", "qwen", "qwen2", "phi3", "gemma", "mixtral", "codellama"} {
		assert.True(t, (&ModelConfig{Architecture: arch}).IsSupportedArchitecture(), arch)
	}
	for _, arch := range []string{"", "gpt2", "bert", "LLAMA", "qwen3"} {
		assert.False(t, (&ModelConfig{Architecture: arch}).IsSupportedArchitecture(), arch)
	}
}

func TestHeadDimensionZeroHeads(t *testing.T) {
	assert.Zero(t, (&ModelConfig{EmbeddingLength: 4096}).HeadDimension())
}

func TestFileModelConfig(t *testing.T) {
	b := &ggufBuilder{}
	b.header(0, 7).
		kvString("general.architecture", "mistral").
		kvU64("mistral.vocab_size", 32768).
		kvU32("mistral.context_length", 32768).
		kvU32("mistral.block_count", 2).
		kvU32("mistral.embedding_length", 64).
		kvU32("mistral.feed_forward_length", 128).
		kvU32("mistral.attention.head_count", 4)

	file, err := Parse(b.reader())
	require.NoError(t, err)

	cfg, err := file.ModelConfig()
	require.NoError(t, err)
	assert.Equal(t, "mistral", cfg.Architecture)
	assert.Equal(t, uint64(32768), cfg.VocabSize)
	assert.Equal(t, uint32(16), cfg.HeadDimension())
	assert.Nil(t, cfg.AttentionHeadCountKV)
}
