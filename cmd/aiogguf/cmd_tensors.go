package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AIOxide/aiogguf/gguf"
)

type tensorsOptions struct {
	limit  int
	filter string
}

func newTensorsCmd(opts *rootOptions) *cobra.Command {
	to := &tensorsOptions{}

	cmd := &cobra.Command{
		Use:   "tensors FILE",
		Short: "List tensor descriptors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.open(cmd, args[0])
			if err != nil {
				return err
			}
			writeTensors(cmd.OutOrStdout(), f, to)
			return nil
		},
	}

	cmd.Flags().IntVar(&to.limit, "limit", 50, "Limit tensor listing (0 = no limit)")
	cmd.Flags().StringVar(&to.filter, "filter", "", "Substring filter for tensor names")

	return cmd
}

func writeTensors(w io.Writer, f *gguf.File, opts *tensorsOptions) {
	table := newTable(w, []string{"NAME", "SHAPE", "TYPE", "SIZE", "OFFSET", "LAYER"})

	shown, matched := 0, 0
	for i := range f.Tensors {
		t := &f.Tensors[i]
		if opts.filter != "" && !strings.Contains(t.Name, opts.filter) {
			continue
		}
		matched++
		if opts.limit > 0 && shown >= opts.limit {
			continue
		}
		shown++

		layer := "-"
		if n, ok := t.LayerNumber(); ok {
			layer = strconv.FormatUint(uint64(n), 10)
		}
		table.Append([]string{
			t.Name,
			t.ShapeString(),
			t.Type.String(),
			humanBytes(t.SizeBytes()),
			humanNumber(t.Offset),
			layer,
		})
	}
	table.Render()

	if shown < matched {
		fmt.Fprintf(w, "\n... %d more (use --limit 0 to show all)\n", matched-shown)
	}
	fmt.Fprintf(w, "\n%s tensors, %s\n", humanNumber(len(f.Tensors)), humanBytes(f.TotalSize()))
}
