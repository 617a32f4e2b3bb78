package main

import (
	"github.com/spf13/cobra"
)

var flattenIn string

var flattenCmd = &cobra.Command{
	Use:   "flatten [file]",
	Short: "Print the flattened listing of a nested document",
	Long: `Reads a nested document from file (or stdin when omitted or "-"), flattens it and
prints the listing in the configured format. The input format follows the file
extension unless --in is given; stdin defaults to JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listing, err := app.Flatten(pathArg(args), flattenIn)
		if err != nil {
			return err
		}
		return app.WriteListing(listing, "")
	},
}

func init() {
	flattenCmd.Flags().StringVar(&flattenIn, "in", "", "input format: json, yaml or cbor")
	rootCmd.AddCommand(flattenCmd)
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
