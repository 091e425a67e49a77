package config

import (
	"fmt"
	"log/slog"
	"strings"

	"goapworld/utils"
)

// Env はプロセス起動時に環境変数から読む設定です。
type Env struct {
	Addr         string
	Port         string
	TuningPath   string
	JournalDir   string
	OTLPEndpoint string
	LogLevel     slog.Level
	Ticks        int
}

func LoadEnv() (Env, error) {
	env := Env{
		Addr:         utils.GetEnvDefault("ADDR", "localhost"),
		Port:         utils.GetEnvDefault("PORT", "9090"),
		TuningPath:   utils.GetEnvDefault("TUNING", ""),
		JournalDir:   utils.GetEnvDefault("JOURNAL_DIR", ""),
		OTLPEndpoint: utils.GetEnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	level, err := parseLevel(utils.GetEnvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return env, err
	}
	env.LogLevel = level

	ticks, err := utils.GetEnvInt("TICKS", 3600)
	if err != nil {
		return env, err
	}
	env.Ticks = ticks
	return env, nil
}

// ListenAddr は http.Server に渡すアドレスです。
func (e Env) ListenAddr() string {
	return e.Addr + ":" + e.Port
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
