package main

import (
	"github.com/spf13/cobra"
)

var graphIn string

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the listing as a Mermaid diagram",
	Long:  `Flattens the document and outputs a Mermaid diagram (graph TD) with one node per listed entity and one edge per link.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Graph(pathArg(args), graphIn)
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphIn, "in", "", "input format: json, yaml or cbor")
	rootCmd.AddCommand(graphCmd)
}
