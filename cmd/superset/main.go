package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fpl-superset/internal/app"
	"github.com/riskibarqy/fpl-superset/internal/config"
	"github.com/riskibarqy/fpl-superset/internal/infrastructure/export"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

const defaultModel = "value"

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	// Logs go to stderr so stdout carries only command output.
	cfg.LogFormat = config.LogFormatConsole
	logger := cfg.NewLogger()
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := &cli{
		cfg:      cfg,
		services: app.NewServices(cfg, logger),
		logger:   logger,
		out:      os.Stdout,
	}
	if err := cli.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

type cli struct {
	cfg      config.Config
	services *app.Services
	logger   *logging.Logger
	out      io.Writer
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	season := c.cfg.DefaultSeason
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		season = strings.TrimSpace(args[1])
	}
	option := ""
	if len(args) > 2 {
		option = strings.TrimSpace(args[2])
	}

	model := option
	if model == "" {
		model = defaultModel
	}

	switch cmd {
	case "export":
		format, err := export.ParseFormat(option)
		if err != nil {
			return err
		}
		table, err := c.services.Supersets.Table(ctx, season)
		if err != nil {
			return err
		}
		path, err := c.services.Exporter.WriteTable(ctx, table, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, path)
	case "prepare":
		run, err := c.services.Models.Prepare(ctx, season, model)
		if err != nil {
			return err
		}
		path, err := c.services.Exporter.WriteMatrix(ctx, run.Season, run.Model, run.Matrix)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, path)
	case "explore":
		run, err := c.services.Models.Explore(ctx, season, model)
		if err != nil {
			return err
		}
		return c.printJSON(run)
	case "summary":
		rows, err := c.services.Supersets.Summary(ctx, season)
		if err != nil {
			return err
		}
		return c.printJSON(rows)
	case "report":
		load, err := c.services.Supersets.Season(ctx, season)
		if err != nil {
			return err
		}
		return c.printJSON(load.Report)
	case "warmup":
		result, err := c.services.Supersets.Warmup(ctx, c.cfg.Seasons, c.cfg.WarmupWorkers)
		if err != nil {
			return err
		}
		return c.printJSON(result)
	default:
		return errUsage
	}

	return nil
}

func (c *cli) printJSON(v any) error {
	encoder := sonic.ConfigStd.NewEncoder(c.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: superset <command> [season] [option]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  export  [season] [csv|json]  write the reconciled table to EXPORT_DIR")
	fmt.Fprintln(w, "  prepare [season] [model]     write the prepared design matrix to EXPORT_DIR")
	fmt.Fprintln(w, "  explore [season] [model]     print correlation views of the cleaned frame")
	fmt.Fprintln(w, "  summary [season]             print the Understat season summary")
	fmt.Fprintln(w, "  report  [season]             print reconciliation drop counts")
	fmt.Fprintln(w, "  warmup                       load every configured season")
	fmt.Fprintln(w, "season defaults to DEFAULT_SEASON, model defaults to value")
}
