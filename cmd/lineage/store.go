package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lineage/internal/cli"
	"github.com/aretw0/lineage/pkg/ports"
)

var (
	saveIn  string
	saveKey string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Save, load, list and delete listings in the configured store",
}

var storeSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Flatten a document and store its listing",
	Long:  `Stores the listing under --key, or under the BLAKE3 digest of its JSON encoding, and prints the key.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: withStore(func(ctx context.Context, store ports.ListingStore, args []string) error {
		_, err := app.Save(ctx, store, pathArg(args), saveIn, saveKey)
		return err
	}),
}

var storeLoadCmd = &cobra.Command{
	Use:   "load <key>",
	Short: "Print a stored listing",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, store ports.ListingStore, args []string) error {
		return app.Load(ctx, store, args[0], "")
	}),
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the keys of stored listings",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, store ports.ListingStore, args []string) error {
		return app.List(ctx, store)
	}),
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a stored listing",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, store ports.ListingStore, args []string) error {
		return app.Delete(ctx, store, args[0])
	}),
}

// withStore opens the configured store for the duration of fn, under a context
// cancelled by SIGINT/SIGTERM.
func withStore(fn func(ctx context.Context, store ports.ListingStore, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Stop()

		store, closeStore, err := app.OpenStore()
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeStore(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		err = fn(ctx, store, args)
		if sig := ctx.Signal(); sig != nil && err != nil {
			return fmt.Errorf("interrupted by %s: %w", sig, err)
		}
		return err
	}
}

func init() {
	storeSaveCmd.Flags().StringVar(&saveIn, "in", "", "input format: json, yaml or cbor")
	storeSaveCmd.Flags().StringVar(&saveKey, "key", "", "key to store the listing under (default: listing digest)")
	storeCmd.AddCommand(storeSaveCmd, storeLoadCmd, storeListCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}
