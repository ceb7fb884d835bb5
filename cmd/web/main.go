// Command web serves a kif task list over HTTP. It shares the session setup
// of the kif CLI, so the same config file and environment apply.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MihkelHunter/kif/internal/app"
	"github.com/MihkelHunter/kif/internal/logging"
	"github.com/MihkelHunter/kif/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("web", pflag.ContinueOnError)
	cfgFile := flags.String("config", "", "config file (default <data-dir>/config.yaml)")
	flags.String("addr", "", "listen address (default :8080)")
	flags.String("data-dir", "", "directory holding the task file")
	flags.Bool("debug", false, "enable debug logging")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}
	debug, _ := flags.GetBool("debug")
	logging.Init(debug)

	v := viper.New()
	for key, name := range map[string]string{"web.addr": "addr", "data_dir": "data-dir", "debug": "debug"} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	s, err := app.Open(v, *cfgFile)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return web.ListenAndServe(ctx, s.Config.Web.Addr, web.NewServer(s.Engine).Routes())
}
