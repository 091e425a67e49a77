package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != Default() {
		t.Errorf("Load(\"\") = %+v, want %+v", got, Default())
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
seed: 42
npcs: 8
spawn:
  weapon: 6
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Seed != 42 {
		t.Errorf("Seed = %d, want 42", got.Seed)
	}
	if got.NPCs != 8 {
		t.Errorf("NPCs = %d, want 8", got.NPCs)
	}
	if got.Spawn.Weapon != 6 {
		t.Errorf("Spawn.Weapon = %d, want 6", got.Spawn.Weapon)
	}
	if got.Spawn.Food != Default().Spawn.Food {
		t.Errorf("Spawn.Food = %d, want default %d", got.Spawn.Food, Default().Spawn.Food)
	}
	if got.TickRateHz != 60 {
		t.Errorf("TickRateHz = %d, want 60", got.TickRateHz)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "tick_rate_hz: 0\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("err = %v, want %v", err, ErrInvalidTuning)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeFile(t, "npcs: [\n")
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want %v", err, os.ErrNotExist)
	}
}

func TestTuning_TickInterval(t *testing.T) {
	tu := Default()
	if got := tu.TickInterval(); got != time.Second/60 {
		t.Errorf("TickInterval = %v, want %v", got, time.Second/60)
	}
	if got := tu.Delta(); got != float32(1)/60 {
		t.Errorf("Delta = %v, want %v", got, float32(1)/60)
	}
}
