package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"goapworld/server"
	"goapworld/server/application"
	"goapworld/server/config"
	"goapworld/server/domain"
	"goapworld/server/journal"
	"goapworld/server/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	text := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: env.LogLevel})
	slog.SetDefault(slog.New(text))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tuning, err := config.Load(env.TuningPath)
	if err != nil {
		return err
	}

	provider, err := telemetry.Setup(ctx, env.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown failed", "err", err)
		}
	}()
	if h := provider.LogHandler(); h != nil {
		slog.SetDefault(slog.New(slog.NewMultiHandler(text, h)))
		slog.InfoContext(ctx, "otlp export enabled", "endpoint", env.OTLPEndpoint)
	}

	var opts []application.AgentOption
	if env.JournalDir != "" {
		w := journal.NewWriter(env.JournalDir)
		defer func() {
			if err := w.Close(); err != nil {
				slog.Warn("journal close failed", "err", err)
			}
		}()
		opts = append(opts, application.WithRecorder(w))
		slog.InfoContext(ctx, "decision journal enabled", "dir", env.JournalDir)
	}

	field := application.NewField(tuning, opts...)
	field.Populate(ctx)

	room := domain.NewRoom("arena", application.NewArenaApplication(field), tuning.TickInterval())
	s := server.NewServer(env.ListenAddr(), telemetry.Instrument(server.Route(room)))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return room.Run(egCtx)
	})
	eg.Go(func() error {
		slog.InfoContext(egCtx, "server listening", "addr", s.Addr())
		if err := s.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		slog.InfoContext(egCtx, "shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "err", err)
			if err := s.Close(); err != nil {
				slog.Error("forced close failed", "err", err)
			}
		}
		return nil
	})

	err = eg.Wait()
	slog.Info("server shutdown complete")
	return err
}
