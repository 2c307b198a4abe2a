package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-auth-console/internal/config"
	"github.com/jrsteele09/go-auth-console/internal/metrics"
	"github.com/jrsteele09/go-auth-console/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the backend for the browser console",
		Long: `Serve the JSON endpoints the browser console calls: the caller's authorization context,
the dashboard aggregate, login and Prometheus metrics. Every request acts as the bearer token it
carries; the server keeps no sessions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			displayAppname(a.config.GetAppName())

			m := metrics.New(prometheus.DefaultRegisterer)
			srv := &http.Server{
				Addr:              a.config.GetPort(),
				Handler:           server.New(a.config, server.WithMetrics(m, prometheus.DefaultGatherer)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errs := make(chan error, 1)
			go func() { errs <- listenAndServe(srv) }()

			select {
			case err := <-errs:
				return err
			case <-waitForStopSignal(cmd.Context()):
			}
			return shutdown(srv)
		},
	}
	cmd.Flags().String("port", "", "Listen address, e.g. :3000")
	if err := a.v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port")); err != nil {
		log.Err(err).Msg("Error binding flag")
	}
	return cmd
}

func listenAndServe(srv *http.Server) error {
	log.Info().Msgf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal(ctx context.Context) <-chan struct{} {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer signal.Stop(stop)
		select {
		case <-stop:
		case <-ctx.Done():
		}
		close(done)
	}()
	return done
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
