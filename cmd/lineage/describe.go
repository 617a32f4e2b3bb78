package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	describeIn    string
	describePlain bool
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Summarize the flattened listing as a table",
	Long: `Flattens the document and prints one row per listed entity. On a terminal the table
is rendered with colors; when piped, or with --plain, the raw Markdown is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pretty := !describePlain && cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
		return app.Describe(pathArg(args), describeIn, pretty)
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeIn, "in", "", "input format: json, yaml or cbor")
	describeCmd.Flags().BoolVar(&describePlain, "plain", false, "print Markdown without terminal styling")
	rootCmd.AddCommand(describeCmd)
}
