package cmd

import (
	"errors"
	"fmt"

	"github.com/koenvw/pane-runner/internal/model"
	"github.com/koenvw/pane-runner/internal/picker"
	"github.com/spf13/cobra"
)

var flagYankBuffer string

var yankCmd = &cobra.Command{
	Use:   "yank",
	Short: "Print the contents of a tmux paste buffer",
	Long: `List tmux paste buffers, choose one, and print its contents on
stdout.

The list-buffers output format differs across tmux versions; set
buffer_format (modern or legacy) or buffer_pattern in the config when
the default does not match your server. With --buffer the listing and
chooser are skipped. Cancelling the chooser prints nothing and exits
zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		format, err := a.bufferFormat()
		if err != nil {
			return err
		}

		id := flagYankBuffer
		if id != "" {
			if err := format.ValidateID(id); err != nil {
				return err
			}
		} else {
			buffers, err := a.mux.Buffers(ctx, format)
			if err != nil {
				return err
			}
			if len(buffers) == 0 {
				return fmt.Errorf("no paste buffers (check buffer_format if tmux lists some)")
			}

			byLabel := make(map[string]model.Buffer, len(buffers))
			labels := make([]string, 0, len(buffers))
			for _, b := range buffers {
				label := fmt.Sprintf("%s (%d bytes): %s", b.ID, b.Size, b.Sample)
				labels = append(labels, label)
				byLabel[label] = b
			}

			chosen, err := picker.Resolve(a.chooser(), "buffer", labels)
			if err != nil {
				if errors.Is(err, picker.ErrCancelled) {
					return nil
				}
				return err
			}
			id = byLabel[chosen].ID
		}

		contents, err := a.mux.ShowBuffer(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(contents)
		return nil
	},
}

func init() {
	yankCmd.Flags().StringVar(&flagYankBuffer, "buffer", "", "buffer id (index or name); skips the chooser")
	rootCmd.AddCommand(yankCmd)
}
