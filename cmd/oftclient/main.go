package main

import (
	"os"

	"github.com/ClipFinance/oft-client/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "oftclient",
		Short:        "Move OFT tokens between XPLA, Ethereum and BNB through LayerZero",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			app, err := NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			cmd.SetContext(wrapApp(cmd.Context(), app))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			unwrapApp(cmd).Close()
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file. Defaults to ./oftclient.yaml when present.")
	cmd.PersistentFlags().String("network", "", "testnet or mainnet. Overrides the config file.")
	cmd.PersistentFlags().String("log-level", "", "Log level. Overrides the config file.")
	cmd.PersistentFlags().String("log-format", "", "Log format, text or json. Overrides the config file.")

	cmd.AddCommand(CmdChains())
	cmd.AddCommand(CmdWallets())
	cmd.AddCommand(CmdBalance())
	cmd.AddCommand(CmdQuote())
	cmd.AddCommand(CmdSend())
	cmd.AddCommand(CmdServe())
	return cmd
}

// applyFlags copies explicitly set root flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("network") {
		cfg.Network, _ = flags.GetString("network")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	return cfg.Validate()
}
