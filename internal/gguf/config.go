package gguf

import (
	"log/slog"
	"slices"
)

// supportedArchitectures lists the model families with known tensor layouts.
var supportedArchitectures = []string{
	"llama", "mistral", "qwen", "qwen2", "phi3", "gemma", "mixtral", "codellama",
}

// ModelConfig is the model configuration extracted from GGUF metadata.
// Optional numeric fields are nil when the key is absent; optional strings
// are empty.
type ModelConfig struct {
	Architecture  string `json:"architecture" yaml:"architecture"`
	VocabSize     uint64 `json:"vocab_size" yaml:"vocab_size"`
	ContextLength uint64 `json:"context_length" yaml:"context_length"`

	BlockCount        uint32 `json:"block_count" yaml:"block_count"`
	EmbeddingLength   uint32 `json:"embedding_length" yaml:"embedding_length"`
	FeedForwardLength uint32 `json:"feed_forward_length" yaml:"feed_forward_length"`

	AttentionHeadCount           uint32   `json:"attention_head_count" yaml:"attention_head_count"`
	AttentionHeadCountKV         *uint32  `json:"attention_head_count_kv,omitempty" yaml:"attention_head_count_kv,omitempty"`
	AttentionLayerNormRMSEpsilon *float32 `json:"attention_layer_norm_rms_epsilon,omitempty" yaml:"attention_layer_norm_rms_epsilon,omitempty"`

	RopeDimensionCount *uint32  `json:"rope_dimension_count,omitempty" yaml:"rope_dimension_count,omitempty"`
	RopeFreqBase       *float32 `json:"rope_freq_base,omitempty" yaml:"rope_freq_base,omitempty"`
	RopeScalingType    string   `json:"rope_scaling_type,omitempty" yaml:"rope_scaling_type,omitempty"`

	TokenizerModel string `json:"tokenizer_model,omitempty" yaml:"tokenizer_model,omitempty"`
	ChatTemplate   string `json:"chat_template,omitempty" yaml:"chat_template,omitempty"`

	// Tokens, Scores and TokenTypes are not populated yet; FromMetadata
	// always leaves them nil.
	Tokens     []string  `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Scores     []float32 `json:"scores,omitempty" yaml:"scores,omitempty"`
	TokenTypes []int32   `json:"token_types,omitempty" yaml:"token_types,omitempty"`

	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	License     string `json:"license,omitempty" yaml:"license,omitempty"`
}

// lookup is one step of a fallback chain: a key and how to read it.
type lookup[T any] struct {
	key  string
	read func(md *Metadata, key string) (T, bool)
}

func u32At(key string) lookup[uint32] {
	return lookup[uint32]{key: key, read: (*Metadata).GetUint32}
}

func u64At(key string) lookup[uint64] {
	return lookup[uint64]{key: key, read: (*Metadata).GetUint64}
}

func f32At(key string) lookup[float32] {
	return lookup[float32]{key: key, read: (*Metadata).GetFloat32}
}

func stringAt(key string) lookup[string] {
	return lookup[string]{key: key, read: (*Metadata).GetString}
}

// arrayLenAt reads the element count of an array value.
func arrayLenAt(key string) lookup[uint64] {
	return lookup[uint64]{key: key, read: func(md *Metadata, key string) (uint64, bool) {
		a, ok := md.GetArray(key)
		return uint64(a.Len()), ok
	}}
}

// resolve tries each step in order and returns the first hit.
func resolve[T any](md *Metadata, log *slog.Logger, field string, chain ...lookup[T]) (T, bool) {
	for _, l := range chain {
		if v, ok := l.read(md, l.key); ok {
			log.Debug("resolved config field", "field", field, "key", l.key)
			return v, true
		}
	}
	var zero T
	return zero, false
}

func required[T any](md *Metadata, log *slog.Logger, field string, dst *T, chain ...lookup[T]) error {
	v, ok := resolve(md, log, field, chain...)
	if !ok {
		return incompleteConfig(field, nil)
	}
	*dst = v
	return nil
}

func optional[T any](md *Metadata, log *slog.Logger, field string, chain ...lookup[T]) *T {
	if v, ok := resolve(md, log, field, chain...); ok {
		return &v
	}
	return nil
}

func optionalString(md *Metadata, log *slog.Logger, field string, chain ...lookup[string]) string {
	s, _ := resolve(md, log, field, chain...)
	return s
}

// FromMetadata extracts the model configuration in a single fail-fast
// pass. Architecture-specific keys are qualified with "<architecture>.".
func FromMetadata(md *Metadata) (*ModelConfig, error) {
	return fromMetadata(md, slog.Default())
}

func fromMetadata(md *Metadata, log *slog.Logger) (*ModelConfig, error) {
	arch, err := md.RequireString("general.architecture")
	if err != nil {
		return nil, incompleteConfig("architecture", err)
	}
	p := arch + "."

	cfg := &ModelConfig{Architecture: arch}

	if err := required(md, log, "vocab_size", &cfg.VocabSize,
		u64At("general.vocab_size"),
		u64At(p+"vocab_size"),
		arrayLenAt("tokenizer.ggml.tokens"),
	); err != nil {
		return nil, err
	}

	if err := required(md, log, "context_length", &cfg.ContextLength,
		u64At("general.context_length"),
		u64At(p+"context_length"),
	); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		field string
		key   string
		dst   *uint32
	}{
		{"block_count", p + "block_count", &cfg.BlockCount},
		{"embedding_length", p + "embedding_length", &cfg.EmbeddingLength},
		{"feed_forward_length", p + "feed_forward_length", &cfg.FeedForwardLength},
		{"attention_head_count", p + "attention.head_count", &cfg.AttentionHeadCount},
	} {
		if err := required(md, log, f.field, f.dst, u32At(f.key)); err != nil {
			return nil, err
		}
	}

	cfg.AttentionHeadCountKV = optional(md, log, "attention_head_count_kv", u32At(p+"attention.head_count_kv"))
	cfg.AttentionLayerNormRMSEpsilon = optional(md, log, "attention_layer_norm_rms_epsilon", f32At(p+"attention.layer_norm_rms_epsilon"))

	cfg.RopeDimensionCount = optional(md, log, "rope_dimension_count", u32At(p+"rope.dimension_count"))
	cfg.RopeFreqBase = optional(md, log, "rope_freq_base", f32At(p+"rope.freq_base"))
	cfg.RopeScalingType = optionalString(md, log, "rope_scaling_type", stringAt(p+"rope.scaling.type"))

	cfg.TokenizerModel = optionalString(md, log, "tokenizer_model", stringAt("tokenizer.ggml.model"))
	cfg.ChatTemplate = optionalString(md, log, "chat_template", stringAt("tokenizer.chat_template"))

	cfg.Name = optionalString(md, log, "name", stringAt("general.name"))
	cfg.Description = optionalString(md, log, "description", stringAt("general.description"))
	cfg.License = optionalString(md, log, "license", stringAt("general.license"))

	return cfg, nil
}

// EstimatedParamCount is a rough transformer parameter estimate: input
// embedding, per-block attention, feed-forward and norm weights, and the
// output projection.
func (c *ModelConfig) EstimatedParamCount() uint64 {
	embd := uint64(c.EmbeddingLength)
	ffn := uint64(c.FeedForwardLength)

	embedding := c.VocabSize * embd
	blocks := uint64(c.BlockCount) * (4*embd*embd + 2*embd*ffn + 2*embd)
	output := c.VocabSize * embd

	return embedding + blocks + output
}

// IsSupportedArchitecture reports whether the architecture is one of the
// known model families.
func (c *ModelConfig) IsSupportedArchitecture() bool {
	return slices.Contains(supportedArchitectures, c.Architecture)
}

// HeadDimension returns embedding_length / attention_head_count, or 0 when
// the head count is 0.
func (c *ModelConfig) HeadDimension() uint32 {
	if c.AttentionHeadCount == 0 {
		return 0
	}
	return c.EmbeddingLength / c.AttentionHeadCount
}
