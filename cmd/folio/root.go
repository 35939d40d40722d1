package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aretw0/folio/internal/platform"
	"github.com/aretw0/folio/pkg/adapters/notify"
	"github.com/aretw0/folio/pkg/core"
)

// app carries the global flags and the resources shared by every subcommand.
type app struct {
	configPath string
	baseURL    string
	token      string
	output     string
	logFile    string
	verbose    bool

	cfg    platform.Config
	logger *slog.Logger
	closer io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Keep a portfolio in sync with its REST API",
		Long: `Folio reads a portfolio document from its REST API and edits it.
Every successful edit triggers a fresh fetch, so what you see is always what the server has.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: folio.yaml searched upwards)")
	flags.StringVar(&a.baseURL, "base-url", "", "Portfolio API root")
	flags.StringVar(&a.token, "token", "", "Bearer token sent with every request")
	flags.StringVarP(&a.output, "output", "o", "text", "Output format: text, json or yaml")
	flags.StringVar(&a.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newShowCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newWatchCmd(a),
		newKindsCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := a.execute(ctx, newRootCmd(a)); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs cmd and releases the log file whatever the outcome.
// PersistentPostRun is not enough: cobra skips it when RunE fails.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) error {
	defer a.closeLog()
	return cmd.ExecuteContext(ctx)
}

func (a *app) closeLog() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	switch a.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	path := a.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path, _ = platform.FindConfig(wd)
		}
	}
	cfg, err := platform.LoadConfig(path)
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.token != "" {
		cfg.Token = a.token
	}
	if a.logFile != "" {
		cfg.LogFile = a.logFile
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if strings.EqualFold(cfg.LogLevel, "debug") || a.verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = cmd.ErrOrStderr()
	if cfg.LogFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		a.closer = rotating
		out = rotating
	}

	a.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

// start builds the service and performs the initial fetch.
// A failed initial fetch is returned so one-shot commands can exit non-zero.
func (a *app) start(ctx context.Context, cmd *cobra.Command) (*core.Service, error) {
	notifier := notify.Multi{
		notify.NewWriter(cmd.ErrOrStderr()),
		notify.Log{Logger: a.logger},
	}

	opts := append(a.cfg.Options(),
		platform.WithLogger(a.logger),
		platform.WithNotifier(notifier),
	)
	svc, err := platform.New(a.cfg.BaseURL, opts...)
	if err != nil {
		return nil, err
	}
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	if err := svc.Controller().LastError(); err != nil {
		_ = svc.Stop(context.Background())
		return nil, err
	}
	return svc, nil
}
