package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf-chat/internal/ai"
	"github.com/thywilljoshua/pdf-chat/internal/attachment"
	"github.com/thywilljoshua/pdf-chat/internal/extract"
	"github.com/thywilljoshua/pdf-chat/internal/metrics"
	"github.com/thywilljoshua/pdf-chat/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the attachment and chat HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			rec := metrics.New(reg)

			pipeline := extract.New(extract.WithLogger(a.logger), extract.WithMetrics(rec))
			proc := attachment.NewProcessor(pipeline, nil, a.logger)

			var assistant ai.Assistant = ai.Noop{}
			if g, err := a.assistant(cmd); err == nil {
				assistant = g
			} else {
				a.logger.Warn("chat disabled", zap.Error(err))
			}

			srv := server.New(server.Config{
				Processor:      proc,
				Assistant:      assistant,
				Logger:         a.logger,
				Gatherer:       reg,
				MaxUploadBytes: a.cfg.MaxUploadBytes,
			})
			defer srv.Close()

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				a.logger.Info("listening", zap.String("addr", addr))
				errc <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
