package main

import (
	"fmt"

	"incomfort/internal/config"
	"incomfort/internal/gateway"
	"incomfort/internal/logger"
	"incomfort/internal/service"

	"github.com/spf13/cobra"
)

// app carries what every subcommand shares once flags are parsed.
type app struct {
	configPath string
	heater     int

	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "incomfort",
		Short:             "Read and control heaters behind an InComfort LAN2RF gateway",
		Long:              "Without a subcommand, prints a summary of the selected heater.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd, true)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), s)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default configs/config.yml)")
	pf.String("gateway", "", "gateway host[:port], overrides gateway.host")
	pf.IntVar(&a.heater, "heater", 0, "heater index")
	pf.Duration("timeout", 0, "gateway request timeout, overrides gateway.timeout")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	for _, f := range fields {
		root.AddCommand(a.fieldCmd(f))
	}
	root.AddCommand(
		a.setCmd(),
		a.heatersCmd(),
		a.muninCmd(),
		a.serveCmd(),
		hashPasswordCmd(),
	)
	return root
}

// load reads the configuration and builds the logger before any subcommand runs.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Log.Level, cmd.ErrOrStderr())
	return nil
}

// client resolves the gateway. Interactive resolution may prompt on the
// command's input and store the answer in the user file.
func (a *app) client(cmd *cobra.Command, interactive bool) (*gateway.Client, error) {
	r := config.NewResolver(a.cfg.Gateway.Host, interactive)
	r.In = cmd.InOrStdin()
	r.Out = cmd.OutOrStdout()
	c, err := gateway.NewClient(r, gateway.WithTimeout(a.cfg.Gateway.Timeout))
	if err != nil {
		return nil, err
	}
	a.log.Debugw("gateway resolved", "gateway", c.Endpoint())
	return c, nil
}

func (a *app) session(cmd *cobra.Command, interactive bool) (*service.HeaterSession, error) {
	c, err := a.client(cmd, interactive)
	if err != nil {
		return nil, err
	}
	s, err := service.NewHeaterSession(cmd.Context(), c, a.heater)
	if err != nil {
		return nil, fmt.Errorf("heater %d: %w", a.heater, err)
	}
	return s, nil
}
