package cmd

import (
	"errors"
	"strings"

	"github.com/koenvw/pane-runner/internal/model"
	"github.com/koenvw/pane-runner/internal/picker"
	"github.com/spf13/cobra"
)

var flagSendTarget string

var sendCmd = &cobra.Command{
	Use:   "send <text>...",
	Short: "Send a line of text to a pane",
	Long: `Send text to a pane, terminated by Enter.

Without --target the pane is chosen interactively (session, then
window, then pane); levels with a single candidate are selected
automatically. Cancelling the chooser exits zero without sending.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		var target string
		if flagSendTarget != "" {
			sel, err := model.ParseTarget(flagSendTarget)
			if err != nil {
				return err
			}
			target = sel.Target()
		} else {
			sel, err := resolveTarget(ctx, a, a.chooser())
			if err != nil {
				if errors.Is(err, picker.ErrCancelled) {
					return nil
				}
				return err
			}
			target = sel.Target()
		}

		return a.mux.SendKeys(ctx, target, strings.Join(args, " "))
	},
}

func init() {
	sendCmd.Flags().StringVar(&flagSendTarget, "target", "", "pane target (session:window.pane); skips the chooser")
	rootCmd.AddCommand(sendCmd)
}
