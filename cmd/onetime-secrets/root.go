package main

import (
	"fmt"
	"log/slog"

	"github.com/common-nighthawk/go-figure"
	"github.com/pudottapommin/onetime-secrets-cli/config"
	"github.com/pudottapommin/onetime-secrets-cli/internal/activity"
	"github.com/pudottapommin/onetime-secrets-cli/internal/app"
	"github.com/pudottapommin/onetime-secrets-cli/internal/prompt"
	"github.com/pudottapommin/onetime-secrets-cli/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	configPath string
	outputDir  string
	verbose    bool
	noOpen     bool
	noBanner   bool
	max        int
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.configPath, "config", "c", "", "path to a YAML config file")
	fs.StringVarP(&o.outputDir, "output-dir", "o", "", "directory the artifacts are written to")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "enable diagnostic output")
	fs.BoolVar(&o.noOpen, "no-open", false, "do not open artifacts after writing them")
	fs.BoolVar(&o.noBanner, "no-banner", false, "do not print the banner")
	fs.IntVar(&o.max, "max", 0, "stop after this many secrets (0 = ask every time)")
}

func newRootCmd() *cobra.Command {
	o := new(options)
	cmd := &cobra.Command{
		Use:   "onetime-secrets",
		Short: "Create short-lived, memorable secrets as self-contained HTML files",
		Long: `onetime-secrets generates a three-word secret, encrypts it in memory and
writes a local HTML page that reveals it on click and hides it once it expires.

Every secret and artifact is recorded in an append-only activity log.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), o)
			if err != nil {
				return err
			}
			return run(cmd, cfg, o)
		},
	}
	bindFlags(cmd.Flags(), o)
	return cmd
}

func loadConfig(fs *pflag.FlagSet, o *options) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if fs.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if o.noOpen {
		cfg.OpenViewer = false
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, o *options) error {
	logLvl := slog.LevelWarn
	if o.verbose || !cfg.IsProd {
		logLvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLvl}))
	slog.SetDefault(logger)

	if !cfg.IsProd && cfg.TemplateDir != "" {
		if err := ui.ReloadTemplates(cfg.TemplateDir); err != nil {
			return err
		}
		logger.Debug("templates reloaded", "dir", cfg.TemplateDir)
	}

	activityLog, err := activity.Open(cfg.ActivityLogPath())
	if err != nil {
		logger.Warn("activity log unavailable, continuing without it", "path", cfg.ActivityLogPath(), "error", err)
		activityLog = activity.Discard()
	}
	defer func() {
		if err := activityLog.Close(); err != nil {
			logger.Warn("failed to close activity log", "error", err)
		}
	}()

	out := cmd.OutOrStdout()
	if !o.noBanner {
		fmt.Fprintln(out, figure.NewColorFigure("OTS", "", "green", true).ColorString())
	}

	secretsApp := app.New(cfg, logger, activityLog, app.WithProgress(func(message string) func() {
		return startSpinner(cmd.ErrOrStderr(), message, o.verbose)
	}))

	p := prompt.New(cmd.InOrStdin(), out, cfg.MaxExpiration)
	p.Presets()
	n, err := secretsApp.RunSession(cmd.Context(), &terminal{Prompter: p, out: out}, o.max)
	logger.Debug("session finished", "published", n, "output_dir", cfg.OutputDir)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "No secrets were created.")
	}
	return nil
}
