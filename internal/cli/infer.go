package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"questify/internal/classify"
)

var inferCmd = &cobra.Command{
	Use:   "infer <request>",
	Short: "Classify a free-form report request as LDAP, DNS or NonDNS",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		engine := classify.NewEngine(client, prompter.Clarify)

		kind, err := engine.Resolve(ctx, strings.Join(args, " "))
		if err != nil {
			var amb *classify.AmbiguousTypeError
			if errors.As(err, &amb) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not determine the report type: %s\n", amb.Reason)
				os.Exit(ExitInvalidInput)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report type: %s\n", kind)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inferCmd)
}
