package main

import (
	"github.com/spf13/cobra"
)

// Global flag values.
var (
	flagConfigDir   string
	flagEndpoint    string
	flagTablePrefix string
	flagLogLevel    string
)

// current is set by PersistentPreRunE so all subcommands can use it.
var current *app

var rootCmd = &cobra.Command{
	Use:   "stockroom",
	Short: "Stockroom stores products and the articles they are built from",
	Long: `Stockroom keeps products and articles in DynamoDB. Saving a product
saves every article it lists first, then the product itself.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig(flagConfigDir)
		if err != nil {
			return err
		}
		for key, name := range map[string]string{
			cfgKeyEndpoint:    "endpoint",
			cfgKeyTablePrefix: "table-prefix",
			cfgKeyLogLevel:    "log-level",
		} {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				return err
			}
		}

		s, err := settingsFrom(v)
		if err != nil {
			return err
		}
		client, err := newDynamoClient(cmd.Context(), s)
		if err != nil {
			return err
		}
		current = newApp(client, s, newLogger(s.LogLevel))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", ".", "directory holding stockroom.yaml")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "DynamoDB endpoint override (e.g. http://localhost:8000)")
	rootCmd.PersistentFlags().StringVar(&flagTablePrefix, "table-prefix", defaultTablePrefix, "prefix for table names")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(articlesCmd)
}
