package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagPutBuffer string

var putCmd = &cobra.Command{
	Use:   "put [text]...",
	Short: "Store text as a tmux paste buffer",
	Long: `Store text as a tmux paste buffer via set-buffer.

The text comes from the arguments, or from stdin when none are given
(a single trailing newline is stripped). With --buffer the buffer id
is chosen instead of letting tmux pick one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var data string
		if len(args) > 0 {
			data = strings.Join(args, " ")
		} else {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			data = strings.TrimSuffix(string(raw), "\n")
		}
		if data == "" {
			return fmt.Errorf("nothing to store")
		}

		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		if flagPutBuffer != "" {
			format, err := a.bufferFormat()
			if err != nil {
				return err
			}
			if err := format.ValidateID(flagPutBuffer); err != nil {
				return err
			}
		}

		return a.mux.SetBuffer(ctx, flagPutBuffer, data)
	},
}

func init() {
	putCmd.Flags().StringVar(&flagPutBuffer, "buffer", "", "buffer id (index or name; default: tmux picks)")
	rootCmd.AddCommand(putCmd)
}
