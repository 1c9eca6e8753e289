package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tomz197/coinshove/internal/coin"
	"github.com/tomz197/coinshove/internal/physics"
)

// Tuning is every gameplay knob that can be overridden from a TOML file.
// Durations are expressed in seconds.
type Tuning struct {
	Shot    ShotTuning    `toml:"shot"`
	Coins   CoinsTuning   `toml:"coins"`
	Session SessionTuning `toml:"session"`
	Keeper  KeeperTuning  `toml:"keeper"`
	Field   FieldTuning   `toml:"field"`
}

// ShotTuning controls aiming and launching.
type ShotTuning struct {
	Power        float64 `toml:"power"`
	MeterSpeed   float64 `toml:"meter_speed"`
	MaxAngle     float64 `toml:"max_angle"`
	SpinRate     float64 `toml:"spin_rate"`
	ResetSeconds float64 `toml:"reset_seconds"`
}

// DenominationTuning is one coin tier.
type DenominationTuning struct {
	Value       int     `toml:"value"`
	SpinSeconds float64 `toml:"spin_seconds"`
	Start       int     `toml:"start"`
}

// CoinsTuning holds the three tiers.
type CoinsTuning struct {
	Nickel  DenominationTuning `toml:"nickel"`
	Dime    DenominationTuning `toml:"dime"`
	Quarter DenominationTuning `toml:"quarter"`
}

// SessionTuning controls the countdown.
type SessionTuning struct {
	Seconds float64 `toml:"seconds"`
}

// KeeperTuning controls the moving obstacle.
type KeeperTuning struct {
	X      float64 `toml:"x"`
	Bottom float64 `toml:"bottom"`
	Top    float64 `toml:"top"`
	Speed  float64 `toml:"speed"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// FieldTuning is the playfield geometry.
type FieldTuning struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	SpawnX     float64 `toml:"spawn_x"`
	SpawnY     float64 `toml:"spawn_y"`
	CoinRadius float64 `toml:"coin_radius"`
	GoalX      float64 `toml:"goal_x"`
	GoalWidth  float64 `toml:"goal_width"`
	GoalBottom float64 `toml:"goal_bottom"`
	GoalTop    float64 `toml:"goal_top"`
}

// DefaultTuning returns the stock game.
func DefaultTuning() Tuning {
	return Tuning{
		Shot: ShotTuning{
			Power:        15,
			MeterSpeed:   3,
			MaxAngle:     30,
			SpinRate:     360,
			ResetSeconds: 1,
		},
		Coins: CoinsTuning{
			Nickel:  DenominationTuning{Value: 5, SpinSeconds: 5, Start: 5},
			Dime:    DenominationTuning{Value: 10, SpinSeconds: 3.5, Start: 3},
			Quarter: DenominationTuning{Value: 25, SpinSeconds: 2, Start: 2},
		},
		Session: SessionTuning{Seconds: 60},
		Keeper: KeeperTuning{
			X:      16,
			Bottom: 3,
			Top:    9,
			Speed:  1,
			Width:  0.6,
			Height: 2.4,
		},
		Field: FieldTuning{
			Width:      24,
			Height:     12,
			SpawnX:     2,
			SpawnY:     6,
			CoinRadius: 0.45,
			GoalX:      21,
			GoalWidth:  2,
			GoalBottom: 1,
			GoalTop:    11,
		},
	}
}

// LoadTuning reads path on top of the defaults. An empty path or a missing
// file yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	md, err := toml.DecodeFile(path, &t)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultTuning(), nil
	}
	if err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("tuning %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the game cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.Shot.Power <= 0 {
		errs = append(errs, errors.New("shot.power must be positive"))
	}
	if t.Shot.MeterSpeed <= 0 {
		errs = append(errs, errors.New("shot.meter_speed must be positive"))
	}
	if t.Shot.MaxAngle < 0 || t.Shot.MaxAngle > 90 {
		errs = append(errs, errors.New("shot.max_angle must be within [0, 90]"))
	}
	if t.Shot.ResetSeconds < 0 {
		errs = append(errs, errors.New("shot.reset_seconds must not be negative"))
	}
	if t.Session.Seconds <= 0 {
		errs = append(errs, errors.New("session.seconds must be positive"))
	}
	for name, d := range map[string]DenominationTuning{
		"nickel":  t.Coins.Nickel,
		"dime":    t.Coins.Dime,
		"quarter": t.Coins.Quarter,
	} {
		if d.Value < 0 || d.SpinSeconds <= 0 || d.Start < 0 {
			errs = append(errs, fmt.Errorf("coins.%s: value and start must not be negative, spin_seconds must be positive", name))
		}
	}
	if t.Coins.Nickel.Start+t.Coins.Dime.Start+t.Coins.Quarter.Start <= 0 {
		errs = append(errs, errors.New("coins: at least one coin must be in the starting purse"))
	}
	if t.Keeper.Top < t.Keeper.Bottom {
		errs = append(errs, errors.New("keeper.top must not be below keeper.bottom"))
	}
	if t.Field.Width <= 0 || t.Field.Height <= 0 {
		errs = append(errs, errors.New("field dimensions must be positive"))
	}
	if t.Field.CoinRadius <= 0 {
		errs = append(errs, errors.New("field.coin_radius must be positive"))
	}
	if t.Field.GoalTop < t.Field.GoalBottom {
		errs = append(errs, errors.New("field.goal_top must not be below field.goal_bottom"))
	}
	return errors.Join(errs...)
}

// CoinConfig converts the tuning into the coin machine's configuration.
func (t Tuning) CoinConfig() coin.Config {
	cfg := coin.DefaultConfig()
	cfg.Table = coin.Table{
		coin.Nickel:  t.Coins.Nickel.spec(),
		coin.Dime:    t.Coins.Dime.spec(),
		coin.Quarter: t.Coins.Quarter.spec(),
	}
	cfg.Inventory = coin.Inventory{
		coin.Nickel:  t.Coins.Nickel.Start,
		coin.Dime:    t.Coins.Dime.Start,
		coin.Quarter: t.Coins.Quarter.Start,
	}
	cfg.ShotPower = t.Shot.Power
	cfg.MeterSpeed = t.Shot.MeterSpeed
	cfg.MaxAngle = t.Shot.MaxAngle
	cfg.SpinRate = t.Shot.SpinRate
	cfg.ResetDelay = seconds(t.Shot.ResetSeconds)
	cfg.Spawn = coin.Vec{X: t.Field.SpawnX, Y: t.Field.SpawnY}
	return cfg
}

// SessionDuration returns the countdown length.
func (t Tuning) SessionDuration() time.Duration {
	return seconds(t.Session.Seconds)
}

// Layout converts the tuning into the physics playfield.
func (t Tuning) Layout() physics.Layout {
	return physics.Layout{
		Width:      t.Field.Width,
		Height:     t.Field.Height,
		Spawn:      coin.Vec{X: t.Field.SpawnX, Y: t.Field.SpawnY},
		CoinRadius: t.Field.CoinRadius,
		Goal: physics.Rect{
			X:      t.Field.GoalX,
			Y:      t.Field.GoalBottom,
			Width:  t.Field.GoalWidth,
			Height: t.Field.GoalTop - t.Field.GoalBottom,
		},
		Keeper: physics.Keeper{
			X:      t.Keeper.X,
			Bottom: t.Keeper.Bottom,
			Top:    t.Keeper.Top,
			Speed:  t.Keeper.Speed,
			Width:  t.Keeper.Width,
			Height: t.Keeper.Height,
		},
	}
}

func (d DenominationTuning) spec() coin.Spec {
	return coin.Spec{Value: d.Value, SpinTime: seconds(d.SpinSeconds)}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
