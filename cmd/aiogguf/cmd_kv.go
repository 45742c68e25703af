package main

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/AIOxide/aiogguf/gguf"
)

type kvOptions struct {
	prefix   string
	asJSON   bool
	maxElems int
	width    int
}

func newKVCmd(opts *rootOptions) *cobra.Command {
	kv := &kvOptions{}

	cmd := &cobra.Command{
		Use:   "kv FILE",
		Short: "List metadata key/value pairs in file order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.open(cmd, args[0])
			if err != nil {
				return err
			}
			if kv.asJSON {
				return writeKVJSON(cmd.OutOrStdout(), f.Metadata, kv)
			}
			writeKVTable(cmd.OutOrStdout(), f.Metadata, kv)
			return nil
		},
	}

	cmd.Flags().StringVar(&kv.prefix, "prefix", "", "Only show keys with this prefix (e.g. 'general.', 'tokenizer.')")
	cmd.Flags().BoolVar(&kv.asJSON, "json", false, "Write one JSON object per key")
	cmd.Flags().IntVar(&kv.maxElems, "max-elems", 8, "Array elements to show before truncating (0 = all)")
	cmd.Flags().IntVar(&kv.width, "width", 80, "Truncate values to this many columns in table output (0 = no limit)")

	return cmd
}

func writeKVTable(w io.Writer, md *gguf.Metadata, opts *kvOptions) {
	table := newTable(w, []string{"KEY", "TYPE", "VALUE"})
	for k, v := range md.All() {
		if !strings.HasPrefix(k, opts.prefix) {
			continue
		}
		table.Append([]string{k, typeName(v), truncate(gguf.Format(v, opts.maxElems), opts.width)})
	}
	table.Render()
}

// kvRecord is one line of `kv --json` output. Arrays longer than the
// display limit are replaced by their element type and length.
type kvRecord struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
	Len   *int   `json:"len,omitempty"`
}

func writeKVJSON(w io.Writer, md *gguf.Metadata, opts *kvOptions) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for k, v := range md.All() {
		if !strings.HasPrefix(k, opts.prefix) {
			continue
		}
		rec := kvRecord{Key: k, Type: typeName(v)}
		if a, ok := v.(gguf.Array); ok && opts.maxElems > 0 && a.Len() > opts.maxElems {
			n := a.Len()
			rec.Len = &n
		} else {
			rec.Value = plainValue(v)
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func typeName(v gguf.Value) string {
	if a, ok := v.(gguf.Array); ok {
		return "array[" + a.Elem.String() + "]"
	}
	return v.Type().String()
}

// plainValue converts a metadata value into a JSON-friendly Go value.
// NaN and infinities have no JSON number form and become strings.
func plainValue(v gguf.Value) any {
	switch v := v.(type) {
	case gguf.Array:
		out := make([]any, len(v.Values))
		for i, e := range v.Values {
			out[i] = plainValue(e)
		}
		return out
	case gguf.Float32:
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 32)
		}
	case gguf.Float64:
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	}
	return v
}
