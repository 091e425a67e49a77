package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"goapworld/server/application"
	"goapworld/server/config"
	"goapworld/server/journal"
)

// simulate はサーバーを立てずにフィールドを TICKS tick 進め、最後の状態を出力します。
func main() {
	if err := run(); err != nil {
		slog.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: env.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tuning, err := config.Load(env.TuningPath)
	if err != nil {
		return err
	}

	var opts []application.AgentOption
	if env.JournalDir != "" {
		w := journal.NewWriter(env.JournalDir)
		defer w.Close()
		opts = append(opts, application.WithRecorder(w))
	}

	field := application.NewField(tuning, opts...)
	field.Populate(ctx)

	slog.InfoContext(ctx, "simulation started", "ticks", env.Ticks, "seed", tuning.Seed, "npcs", tuning.NPCs)
	for range env.Ticks {
		if ctx.Err() != nil {
			break
		}
		field.Step(ctx)
	}

	for _, a := range field.Agents() {
		slog.InfoContext(ctx, "agent",
			"id", a.ID,
			"pos", a.Position,
			"health", a.Health,
			"food", a.Food,
			"stamina", a.Stamina,
			"armed", a.Weapon.Loaded(),
			"goal", a.Goal(),
			"action", a.CurrentAction(),
		)
	}
	slog.InfoContext(ctx, "simulation finished",
		"tick", field.Tick(),
		"objects", len(field.Objects()),
		"projectiles", len(field.Projectiles()),
	)
	return nil
}
