package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/spf13/cobra"

	"github.com/AIOxide/aiogguf/gguf"
	"github.com/AIOxide/aiogguf/internal/envconfig"
	"github.com/AIOxide/aiogguf/internal/logger"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	logLevel  string
	logFormat string
	maxString uint64
	maxArray  uint64
	maxDepth  uint
}

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command and its subcommands.
func NewCLI() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "aiogguf",
		Short:         "Inspect GGUF model files",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := envconfig.LogLevel()
			if cmd.Flags().Changed("log-level") {
				level = logger.ParseLevel(opts.logLevel)
			}
			log := logger.New(cmd.ErrOrStderr(), level, logger.Format(opts.logFormat))
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			log.Debug("environment", "env", envconfig.Values())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", string(logger.FormatPretty), "Log format (pretty, text, json)")
	pf.Uint64Var(&opts.maxString, "max-string", envconfig.MaxStringLength(), "Maximum metadata string length in bytes (0 = no limit)")
	pf.Uint64Var(&opts.maxArray, "max-array", envconfig.MaxArrayLength(), "Maximum metadata array length (0 = no limit)")
	pf.UintVar(&opts.maxDepth, "max-depth", envconfig.MaxArrayDepth(), "Maximum metadata array nesting depth")

	infoCmd := newInfoCmd(opts)
	kvCmd := newKVCmd(opts)
	tensorsCmd := newTensorsCmd(opts)
	configCmd := newConfigCmd(opts)

	envVars := envconfig.AsMap()
	envs := []envconfig.EnvVar{
		envVars["AIOGGUF_DEBUG"],
		envVars["AIOGGUF_MAX_STRING"],
		envVars["AIOGGUF_MAX_ARRAY"],
		envVars["AIOGGUF_MAX_DEPTH"],
	}
	for _, cmd := range []*cobra.Command{infoCmd, kvCmd, tensorsCmd, configCmd} {
		appendEnvDocs(cmd, envs)
	}

	rootCmd.AddCommand(
		infoCmd,
		kvCmd,
		tensorsCmd,
		configCmd,
		newVersionCmd(),
	)

	return rootCmd
}

// open parses the file at path with the limits and logger from the
// persistent flags.
func (o *rootOptions) open(cmd *cobra.Command, path string) (*gguf.File, error) {
	log := logger.FromContext(cmd.Context())

	f, err := gguf.Open(path,
		gguf.WithMaxStringLength(o.maxString),
		gguf.WithMaxArrayLength(o.maxArray),
		gguf.WithMaxArrayDepth(int(min(o.maxDepth, math.MaxInt32))),
		gguf.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug("opened model", slog.String("path", path), slog.Int("tensors", len(f.Tensors)))
	return f, nil
}
