package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AIOxide/aiogguf/gguf"
	"github.com/AIOxide/aiogguf/internal/logger"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Show header, model configuration and tensor summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.open(cmd, args[0])
			if err != nil {
				return err
			}

			cfg, err := f.ModelConfig()
			if err != nil {
				// The file itself is fine; show what we have.
				logger.FromContext(cmd.Context()).Warn("model configuration unavailable", "error", err)
			}

			showInfo(cmd.OutOrStdout(), f, cfg)
			return nil
		},
	}
}

func showInfo(w io.Writer, f *gguf.File, cfg *gguf.ModelConfig) {
	tableRender := func(header string, rows [][]string) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintln(w, " ", header)
		table := newTable(w, nil)
		table.AppendBulk(rows)
		table.Render()
		fmt.Fprintln(w)
	}

	if cfg != nil {
		rows := [][]string{
			{"", "architecture", cfg.Architecture},
		}
		if cfg.Name != "" {
			rows = append(rows, []string{"", "name", cfg.Name})
		}
		rows = append(rows,
			[]string{"", "parameters", humanParams(cfg.EstimatedParamCount()) + " (estimated)"},
			[]string{"", "context length", humanNumber(cfg.ContextLength)},
			[]string{"", "embedding length", humanNumber(cfg.EmbeddingLength)},
			[]string{"", "vocab size", humanNumber(cfg.VocabSize)},
			[]string{"", "block count", humanNumber(cfg.BlockCount)},
			[]string{"", "attention heads", heads(cfg)},
		)
		if cfg.TokenizerModel != "" {
			rows = append(rows, []string{"", "tokenizer", cfg.TokenizerModel})
		}
		if !cfg.IsSupportedArchitecture() {
			rows = append(rows, []string{"", "supported", "no"})
		}
		tableRender("Model", rows)
	}

	tableRender("File", [][]string{
		{"", "version", strconv.FormatUint(uint64(f.Header.Version), 10)},
		{"", "tensors", humanNumber(f.Header.TensorCount)},
		{"", "metadata", humanNumber(f.Header.MetadataKVCount)},
		{"", "alignment", humanNumber(f.Alignment)},
		{"", "data offset", humanNumber(f.DataOffset)},
		{"", "tensor data", humanBytes(f.TotalSize())},
	})

	types := f.QuantizationTypes()
	counts := make(map[gguf.QuantizationType]int, len(types))
	for _, t := range f.Tensors {
		counts[t.Type]++
	}
	rows := make([][]string, 0, len(types))
	for _, q := range types {
		rows = append(rows, []string{"", q.String(), humanNumber(counts[q]) + " tensors", q.Description()})
	}
	tableRender("Quantization", rows)
}

func heads(cfg *gguf.ModelConfig) string {
	var sb strings.Builder
	sb.WriteString(humanNumber(cfg.AttentionHeadCount))
	if cfg.AttentionHeadCountKV != nil && *cfg.AttentionHeadCountKV != cfg.AttentionHeadCount {
		fmt.Fprintf(&sb, " (%d kv)", *cfg.AttentionHeadCountKV)
	}
	if d := cfg.HeadDimension(); d > 0 {
		fmt.Fprintf(&sb, ", head dim %d", d)
	}
	return sb.String()
}
