package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AIOxide/aiogguf/gguf"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config FILE",
		Short: "Print the extracted model configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.open(cmd, args[0])
			if err != nil {
				return err
			}
			cfg, err := f.ModelConfig()
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), cfg, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")

	return cmd
}

func writeConfig(w io.Writer, cfg *gguf.ModelConfig, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
