// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"github.com/caarlos0/env"
)

type Config struct {
	BaseDelta           int `env:"QUEUE_BASE_DELTA"            envDefault:"50"   envDocs:"initial accepted rating distance when a player enqueues"`
	StepSeconds         int `env:"QUEUE_STEP_SECONDS"          envDefault:"10"   envDocs:"seconds of waiting per tolerance widening step"`
	StepDelta           int `env:"QUEUE_STEP_DELTA"            envDefault:"25"   envDocs:"rating distance added per widening step"`
	MaxDelta            int `env:"QUEUE_MAX_DELTA"             envDefault:"400"  envDocs:"hard cap on the accepted rating distance"`
	DefaultRating       int `env:"QUEUE_DEFAULT_RATING"        envDefault:"1200" envDocs:"rating assumed for players without a rating record"`
	AcceptTimeoutSecond int `env:"MATCH_ACCEPT_TIMEOUT_SECOND" envDefault:"30"   envDocs:"seconds both players have to accept a proposed match"`
	SweepIntervalSecond int `env:"MATCH_SWEEP_INTERVAL_SECOND" envDefault:"5"    envDocs:"interval of the background sweep that expires unaccepted matches"`
	MaxTurns            int `env:"COMBAT_MAX_TURNS"            envDefault:"100"  envDocs:"turn bound that guarantees a duel terminates"`
}

// Balance holds the stat formula constants. The numbers are player-visible
// through the combat log, so changing them is a balance decision, not a refactor.
type Balance struct {
	HpBase     float64 `env:"BALANCE_HP_BASE"      envDefault:"500"`
	HpPerLevel float64 `env:"BALANCE_HP_PER_LEVEL" envDefault:"25"`
	HpPerH     float64 `env:"BALANCE_HP_PER_H"     envDefault:"15"`
	HpPerG     float64 `env:"BALANCE_HP_PER_G"     envDefault:"5"`

	AlphaK       float64 `env:"BALANCE_ALPHA_K"         envDefault:"0.04"`
	BetaG        float64 `env:"BALANCE_BETA_G"          envDefault:"0.02"`
	CritBase     float64 `env:"BALANCE_CRIT_BASE"       envDefault:"0.05"`
	CritPerK     float64 `env:"BALANCE_CRIT_PER_K"      envDefault:"0.003"`
	CritCap      float64 `env:"BALANCE_CRIT_CAP"        envDefault:"0.50"`
	CritMultBase float64 `env:"BALANCE_CRIT_MULT_BASE"  envDefault:"1.50"`
	CritMultPerK float64 `env:"BALANCE_CRIT_MULT_PER_K" envDefault:"0.002"`

	MitCap        float64 `env:"BALANCE_MIT_CAP"         envDefault:"0.60"`
	MitCurveConst float64 `env:"BALANCE_MIT_CURVE_CONST" envDefault:"100"`

	DefaultWeaponDamage   float64 `env:"BALANCE_DEFAULT_WEAPON_DAMAGE"   envDefault:"50"`
	DisplayCritMultiplier float64 `env:"BALANCE_DISPLAY_CRIT_MULTIPLIER" envDefault:"1.5" envDocs:"independent on-hit crit multiplier applied on top of the expected-hit crit term"`
}

// ParseConfig reads Config from the environment.
func ParseConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseBalance reads Balance from the environment.
func ParseBalance() (*Balance, error) {
	balance := &Balance{}
	if err := env.Parse(balance); err != nil {
		return nil, err
	}

	return balance, nil
}
