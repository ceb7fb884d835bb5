package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MihkelHunter/kif/internal/app"
	"github.com/MihkelHunter/kif/internal/web"
)

func webCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the task list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.Open(v, *cfgFile)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return web.ListenAndServe(ctx, s.Config.Web.Addr, web.NewServer(s.Engine).Routes())
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	bindFlag(v, "web.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
