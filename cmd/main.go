package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"vehicle-telemetry/controller"
	"vehicle-telemetry/models"
	"vehicle-telemetry/utils"
	"vehicle-telemetry/views"
)

var cfg *utils.Config

func main() {
	app := &cli.App{
		Name:  "telemetry",
		Usage: "normalize vehicle telemetry exports and render dashboards",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config/telemetry.yaml", Usage: "path to telemetry.yaml"},
			&cli.StringFlag{Name: "log", Usage: "optional log file path (stdout is always included)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides config)"},
		},
		Before: setup,
		After: func(*cli.Context) error {
			utils.L().Close()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "plot",
				Usage:     "render the dashboard for one export to a PNG file",
				ArgsUsage: "<export.csv>",
				Flags:     []cli.Flag{kindFlag(), outFlag()},
				Action:    plotAction,
			},
			{
				Name:      "summary",
				Usage:     "print the min/max table for one export",
				ArgsUsage: "<export.csv>",
				Flags:     []cli.Flag{kindFlag()},
				Action:    summaryAction,
			},
			{
				Name:      "export",
				Usage:     "write the normalized table, with derived columns, as CSV",
				ArgsUsage: "<export.csv>",
				Flags:     []cli.Flag{kindFlag(), outFlag()},
				Action:    exportAction,
			},
			{
				Name:   "serve",
				Usage:  "serve the upload form",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"}},
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		utils.L().Error("%v", err)
		os.Exit(1)
	}
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{Name: "kind", Value: "ev", Usage: "dashboard variant: ev or combustion"}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path (default derived from the input name)"}
}

// setup loads config and starts the logger before any command runs.
func setup(c *cli.Context) error {
	var err error
	cfg, err = utils.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if f := c.String("log"); f != "" {
		cfg.Logging.File = f
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	level, err := utils.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	utils.InitLogger(level, cfg.Logging.FileOptions())

	if cfg.Source == "" {
		utils.L().Debug("no config file at %s, using built-in defaults", c.String("config"))
	} else {
		utils.L().Debug("config loaded from %s", cfg.Source)
	}
	return nil
}

func inputArg(c *cli.Context) (string, controller.Kind, error) {
	if c.NArg() != 1 {
		return "", 0, cli.Exit(fmt.Sprintf("usage: %s %s %s", c.App.Name, c.Command.Name, c.Command.ArgsUsage), 2)
	}
	kind, err := controller.ParseKind(c.String("kind"))
	if err != nil {
		return "", 0, cli.Exit(err.Error(), 2)
	}
	return c.Args().First(), kind, nil
}

// fail turns pipeline errors into exit codes; a SchemaError aborts with
// its message.
func fail(path string, err error) error {
	var se *models.SchemaError
	if errors.As(err, &se) {
		return cli.Exit(fmt.Sprintf("%s: %v", path, se), 1)
	}
	return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
}

func loadTable(c *cli.Context, dash *controller.DashboardController, path string, kind controller.Kind) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dash.Load(c.Context, f, kind)
}

func plotAction(c *cli.Context) error {
	path, kind, err := inputArg(c)
	if err != nil {
		return err
	}
	out := c.String("out")
	if out == "" {
		out = utils.OutputName(path, kind.String()+"_dashboard", ".png")
	}

	in, err := os.Open(path)
	if err != nil {
		return fail(path, err)
	}
	defer in.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fail(out, err)
	}

	dash := controller.NewDashboardController(cfg)
	t, err := dash.Render(c.Context, in, kind, dst)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(out)
		return fail(path, err)
	}

	utils.L().Info("dashboard written to %s (%d rows)", out, t.Len())
	fmt.Println("✓ Dashboard saved to:", out)
	return nil
}

func summaryAction(c *cli.Context) error {
	path, kind, err := inputArg(c)
	if err != nil {
		return err
	}
	t, err := loadTable(c, controller.NewDashboardController(cfg), path, kind)
	if err != nil {
		return fail(path, err)
	}
	return views.WriteSummary(os.Stdout, t)
}

func exportAction(c *cli.Context) error {
	path, kind, err := inputArg(c)
	if err != nil {
		return err
	}
	out := c.String("out")
	if out == "" {
		out = utils.OutputName(path, "normalized", ".csv")
	}

	t, err := loadTable(c, controller.NewDashboardController(cfg), path, kind)
	if err != nil {
		return fail(path, err)
	}
	rows, err := views.ExportFile(out, t)
	if err != nil {
		return fail(out, err)
	}
	utils.L().Info("exported %d rows × %d columns to %s", rows, len(t.Columns()), out)
	return nil
}

func serveAction(c *cli.Context) error {
	addr := cfg.Server.Addr
	if a := c.String("addr"); a != "" {
		addr = a
	}

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  Telemetry Dashboard  ·  upload form")
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	uploads := controller.NewUploadController(controller.NewDashboardController(cfg), cfg.Server)
	srv := &http.Server{
		Addr:         addr,
		Handler:      uploads.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.L().Info("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		utils.L().Info("received signal: %v, shutting down…", sig)
	case err, ok := <-errCh:
		if ok {
			return cli.Exit(fmt.Sprintf("http server: %v", err), 1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.L().Warn("http shutdown: %v", err)
	}
	utils.L().Info("server stopped after %d dashboards", uploads.Served())
	return nil
}
