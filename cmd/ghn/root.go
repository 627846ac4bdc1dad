package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nhle/ghn/internal/app"
	"github.com/nhle/ghn/internal/credential"
	"github.com/nhle/ghn/internal/model"
)

// options is shared by every subcommand. PersistentPreRunE fills cfg.
type options struct {
	configPath string
	v          *viper.Viper
	cfg        *model.AppConfig
	closeLog   func() error
}

func newRootCommand() *cobra.Command {
	o := &options{v: model.NewViper(model.DefaultConfigPath())}

	cmd := &cobra.Command{
		Use:   "ghn",
		Short: "Triage GitHub notifications and your open pull requests from the terminal.",
		Example: `
ghn
ghn --all --interval 30
ghn history --failed`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if o.closeLog != nil {
				return o.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runTUI(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", model.DefaultConfigPath(), "path to the config file")
	cmd.Flags().Int("interval", 0, "seconds between background refreshes")
	cmd.Flags().Bool("all", false, "include read notifications")
	_ = o.v.BindPFlag("poll_interval_sec", cmd.Flags().Lookup("interval"))
	_ = o.v.BindPFlag("include_read", cmd.Flags().Lookup("all"))

	addAuth(cmd, o)
	addIgnores(cmd, o)
	addHistory(cmd, o)
	return cmd
}

func (o *options) load() error {
	o.v.SetConfigFile(o.configPath)
	cfg, err := model.LoadConfig(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	o.closeLog = closeLog
	log.Debug("config loaded", "path", o.configPath,
		"interval", cfg.PollIntervalSec, "include_read", cfg.IncludeRead)
	return nil
}

func (o *options) runTUI(ctx context.Context) error {
	token, err := credential.ResolveToken(ctx)
	if err != nil {
		return err
	}

	rt, err := app.Build(ctx, o.cfg, app.NewService(token))
	if err != nil {
		return err
	}
	defer rt.Close()

	p := tea.NewProgram(app.New(rt.Deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
