package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/lineage/internal/cli"
	"github.com/aretw0/lineage/internal/config"
	"github.com/aretw0/lineage/internal/logging"
)

var (
	cfgFile     string
	showMetrics bool
	v           = viper.New()
	app         *cli.App
)

var rootCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Flatten material histories into dependency-ordered listings",
	Long: `lineage reads a nested material history (JSON, YAML or CBOR), assigns identifiers
to entities that lack them, and writes the flat listing of everything it references,
templates first and runs last, with references replaced by links.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: dumpMetrics,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: "+config.DefaultPath+" if present)")
	flags.String("format", "", "output format: json, yaml or cbor")
	flags.String("scope", "", "scope for generated identifiers and preferred link scope")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("store", "", "listing store backend: file or redis")
	flags.BoolVar(&showMetrics, "metrics", false, "print collected metrics to stderr when the command ends")

	_ = v.BindPFlag("format", flags.Lookup("format"))
	_ = v.BindPFlag("scope", flags.Lookup("scope"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("store.backend", flags.Lookup("store"))
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	app = cli.NewApp(cfg, logging.New(level))
	app.In = cmd.InOrStdin()
	app.Out = cmd.OutOrStdout()
	app.Logger.Debug("configuration loaded", "file", v.ConfigFileUsed(), "backend", cfg.Store.Backend)
	return nil
}

func dumpMetrics(cmd *cobra.Command, args []string) error {
	if !showMetrics || app == nil {
		return nil
	}
	return app.WriteMetrics(cmd.ErrOrStderr())
}
