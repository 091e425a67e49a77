package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning はアリーナのシミュレーション設定です。
type Tuning struct {
	Seed uint64 `yaml:"seed"`

	TickRateHz  int     `yaml:"tick_rate_hz"`
	WorldWidth  float32 `yaml:"world_width"`
	WorldHeight float32 `yaml:"world_height"`
	NPCs        int     `yaml:"npcs"`

	Spawn Spawn `yaml:"spawn"`

	ReplenishEveryTicks int `yaml:"replenish_every_ticks"`
	RespawnTicks        int `yaml:"respawn_ticks"`
	MaxPlanExpansions   int `yaml:"max_plan_expansions"`
}

// Spawn は種類ごとのオブジェクトの初期数です。補充もこの数が上限です。
type Spawn struct {
	Food    int `yaml:"food"`
	Health  int `yaml:"health"`
	Stamina int `yaml:"stamina"`
	Weapon  int `yaml:"weapon"`
}

func Default() Tuning {
	return Tuning{
		Seed:        1,
		TickRateHz:  60,
		WorldWidth:  1280,
		WorldHeight: 720,
		NPCs:        5,
		Spawn: Spawn{
			Food:    10,
			Health:  5,
			Stamina: 5,
			Weapon:  3,
		},
		ReplenishEveryTicks: 600, // 10秒 @60FPS
		RespawnTicks:        180, // 3秒 @60FPS
		MaxPlanExpansions:   0,
	}
}

// Load は path のYAMLをデフォルト値の上に重ねて読み込みます。path が空ならデフォルト値を返します。
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	switch {
	case t.TickRateHz <= 0:
		return fmt.Errorf("%w: tick_rate_hz must be positive, got %d", ErrInvalidTuning, t.TickRateHz)
	case t.WorldWidth <= 50 || t.WorldHeight <= 50:
		return fmt.Errorf("%w: world must be larger than 50x50, got %vx%v", ErrInvalidTuning, t.WorldWidth, t.WorldHeight)
	case t.NPCs < 0:
		return fmt.Errorf("%w: npcs must not be negative", ErrInvalidTuning)
	case t.Spawn.Food < 0 || t.Spawn.Health < 0 || t.Spawn.Stamina < 0 || t.Spawn.Weapon < 0:
		return fmt.Errorf("%w: spawn counts must not be negative", ErrInvalidTuning)
	case t.ReplenishEveryTicks < 0 || t.RespawnTicks < 0:
		return fmt.Errorf("%w: tick intervals must not be negative", ErrInvalidTuning)
	case t.MaxPlanExpansions < 0:
		return fmt.Errorf("%w: max_plan_expansions must not be negative", ErrInvalidTuning)
	}
	return nil
}

// TickInterval は1tickの実時間です。
func (t Tuning) TickInterval() time.Duration {
	return time.Second / time.Duration(t.TickRateHz)
}

// Delta は1tickの秒数です。
func (t Tuning) Delta() float32 {
	return 1 / float32(t.TickRateHz)
}
