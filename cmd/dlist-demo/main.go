package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/benz9527/dlist/demo"
	"github.com/benz9527/dlist/lib/infra"
	"github.com/benz9527/dlist/xlog"
)

const envScenario = "DLIST_SCENARIO"

type config struct {
	scenario   string
	logLevel   string
	logEncoder string
	envFile    string
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}
	fs := pflag.NewFlagSet("dlist-demo", pflag.ContinueOnError)
	fs.StringVarP(&cfg.scenario, "scenario", "s", "", "scenario yaml file, the embedded default if empty")
	fs.StringVar(&cfg.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR, XLOG_LVL if empty")
	fs.StringVar(&cfg.logEncoder, "log-encoder", "text", "json or text")
	fs.StringVar(&cfg.envFile, "env-file", ".env", "dotenv file loaded before start")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv keeps the variables already present in the process environment.
// The scenario falls back to DLIST_SCENARIO even if the dotenv file failed to load.
func loadEnv(cfg *config) error {
	var err error
	if len(cfg.envFile) > 0 {
		err = godotenv.Load(cfg.envFile)
	}
	if len(cfg.scenario) == 0 {
		cfg.scenario = os.Getenv(envScenario)
	}
	return err
}

func newLogger(cfg *config) (xlog.XLogger, error) {
	enc, ok := xlog.ParseEncoder(cfg.logEncoder)
	if !ok {
		return nil, infra.NewErrorStack(fmt.Sprintf("[dlist-demo] unknown log encoder %q", cfg.logEncoder))
	}
	if len(strings.TrimSpace(cfg.logLevel)) > 0 {
		if _, ok = xlog.ParseLevel(cfg.logLevel); !ok {
			return nil, infra.NewErrorStack(fmt.Sprintf("[dlist-demo] unknown log level %q", cfg.logLevel))
		}
	}
	return xlog.NewXLogger(
		xlog.WithXLoggerName("dlist"),
		xlog.WithXLoggerWriter(xlog.StdErr),
		xlog.WithXLoggerEncoder(enc),
		xlog.WithXLoggerLevelString(cfg.logLevel),
	), nil
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, runner *demo.Runner, logger xlog.XLogger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			report, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			fields := []zap.Field{
				zap.String("scenario", report.Scenario),
				zap.Int("steps", len(report.Steps)),
				zap.Int("failed", report.Failed()),
			}
			if stepErr := report.Err(); stepErr != nil {
				logger.Warn("report", append(fields, xlog.Stack(stepErr))...)
			} else {
				logger.Info("report", fields...)
			}
			return shutdowner.Shutdown()
		},
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	envErr := loadEnv(cfg)
	logger := lo.Must(newLogger(cfg))
	if envErr != nil {
		logger.Warn("dotenv not loaded", zap.String("file", cfg.envFile), zap.Error(envErr))
	}

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Supply(cfg),
		fx.Provide(
			func() xlog.XLogger { return logger },
			func() io.Writer { return os.Stdout },
			func(cfg *config) (*demo.Scenario, error) {
				return demo.LoadScenario(cfg.scenario)
			},
			demo.NewRunner,
		),
		fx.Invoke(run),
	)
	app.Run()
	if err = app.Err(); err != nil {
		logger.ErrorStack(err, "dlist demo failed")
		_ = logger.Sync()
		os.Exit(1)
	}
}
