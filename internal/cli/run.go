package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"circprog/internal/logger"
	"circprog/internal/metrics"
	"circprog/internal/preview"
	"circprog/internal/progress"
	"circprog/internal/spinner"
)

// shutdownTimeout bounds the metrics server shutdown.
const shutdownTimeout = 2 * time.Second

func (a *app) newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate the indicator in the terminal",
		Long: "Animate the indicator until interrupted or until --duration has passed,\n" +
			"then play the exit animation.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}

	cmd.Flags().Float64("fps", 60, "Animation ticks per second")
	cmd.Flags().Float64("max-redraws", 0, "Cap terminal writes per second (0 writes every frame)")
	cmd.Flags().Duration("duration", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().Int("progress", -1, "Progress percentage for determinate mode (-1 to leave unset)")
	cmd.Flags().Int("cols", preview.DefaultCols, "Canvas width in characters")
	cmd.Flags().Int("rows", preview.DefaultRows, "Canvas height in characters")
	cmd.Flags().String("color", string(spinner.ColorAuto), "Color output: auto, always or never")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

func (a *app) run(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	mode, err := spinner.ParseColorMode(a.v.GetString("color"))
	if err != nil {
		return err
	}
	cols, rows := a.v.GetInt("cols"), a.v.GetInt("rows")
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", cols, rows)
	}

	fps := a.v.GetFloat64("fps")
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %g", fps)
	}

	log := a.newLogger(cmd)
	opts := []progress.Option{
		progress.WithLogger(log),
		progress.WithFrameInterval(time.Duration(float64(time.Second) / fps)),
	}

	if addr := a.v.GetString("metrics-addr"); addr != "" {
		obs := metrics.NewObserver()
		stop, err := serveMetrics(addr, obs.Handler(), log)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, progress.WithObserver(obs))
	}

	out := cmd.OutOrStdout()
	view := spinner.NewTerminal(out, cols, rows, spinner.NewRenderer(out, mode))
	view.LimitRedraws(a.v.GetFloat64("max-redraws"))
	animator, err := spinner.NewAnimator(cfg, view, opts...)
	if err != nil {
		return err
	}

	if err := animator.Start(); err != nil {
		return err
	}
	if p := a.v.GetInt("progress"); p >= 0 {
		if err := animator.SetProgress(p); err != nil {
			animator.Stop()
			return err
		}
	}

	ctx := cmd.Context()
	if d := a.v.GetDuration("duration"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	<-ctx.Done()

	animator.Stop()
	log.WithFields(logger.Fields{"frames": view.Frames()}).Debug("animation finished")
	return nil
}

// serveMetrics starts an HTTP server exposing handler on /metrics and
// returns a function that shuts it down.
func serveMetrics(addr string, handler http.Handler, log logger.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("metrics server failed: %v", err))
		}
	}()
	log.WithFields(logger.Fields{"addr": ln.Addr().String()}).Info("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
