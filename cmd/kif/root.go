package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MihkelHunter/kif/internal/app"
	"github.com/MihkelHunter/kif/internal/config"
	"github.com/MihkelHunter/kif/internal/logging"
	"github.com/MihkelHunter/kif/internal/ui"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd(viper.New()).Execute()
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:           "kif",
		Short:         "kif is a line-oriented task tracker",
		Long:          "kif reads commands such as \"todo Buy milk\" or \"deadline report /by 2025-03-03\" and keeps the list on disk.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logging.Init(debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.Open(v, cfgFile)
			if err != nil {
				return err
			}
			defer s.Close()
			return ui.RunConsole(cmd.InOrStdin(), cmd.OutOrStdout(), s.Engine)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default <data-dir>/config.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("data-dir", "", "directory holding the task file")
	flags.String("driver", "", fmt.Sprintf("storage driver: %s or %s", config.DriverFile, config.DriverSQLite))
	bindFlag(v, "debug", flags.Lookup("debug"))
	bindFlag(v, "data_dir", flags.Lookup("data-dir"))
	bindFlag(v, "storage.driver", flags.Lookup("driver"))

	rootCmd.AddCommand(tuiCmd(v, &cfgFile))
	rootCmd.AddCommand(webCmd(v, &cfgFile))
	rootCmd.AddCommand(pathCmd(v, &cfgFile))
	return rootCmd
}

func tuiCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.Open(v, *cfgFile)
			if err != nil {
				return err
			}
			defer s.Close()
			return ui.RunTUI(cmd.Context(), s.Engine)
		},
	}
}

func pathCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where tasks are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *cfgFile)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", cfg.Storage.Path, cfg.Storage.Driver)
			return err
		},
	}
}

func bindFlag(v *viper.Viper, key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}
