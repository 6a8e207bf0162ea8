package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Range is an inclusive [Min,Max] bound used by the stat validator.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Clamp returns v limited to the range.
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v already satisfies the range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Rules holds every balance bound the stat validator enforces. The engine
// is always final: any proposal outside these bounds is corrected, never
// rejected back to the caller.
type Rules struct {
	HitPoints Range `json:"hit_points"`
	Attack    Range `json:"attack"`
	Defense   Range `json:"defense"`
	Speed     Range `json:"speed"`

	// PointBudget caps the sum of the four base stats. Proposals above the
	// budget are scaled down proportionally, preserving relative ratios.
	PointBudget int `json:"point_budget"`

	Power         Range `json:"power"`          // damage move base power
	EffectPercent Range `json:"effect_percent"` // buff/debuff magnitude (%)
	HealAmount    Range `json:"heal_amount"`    // heal move magnitude (flat hp)
	StunChance    Range `json:"stun_chance"`    // stun success probability (%)
	Accuracy      Range `json:"accuracy"`       // hit probability (%)
	Duration      Range `json:"duration"`       // buff/debuff duration (turns)

	// ModifierCap bounds the net percentage adjustment on any single stat
	// from accumulated buffs and debuffs.
	ModifierCap int `json:"modifier_cap"`
}

type rawConfig struct {
	Rules  *Rules `json:"rules"`
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	MoveTimeoutSeconds    int `json:"move_timeout_seconds"`
	CreaturesPerPlayer    int `json:"creatures_per_player"`
	DrawTimeSeconds       int `json:"draw_time_seconds"`
	PublicBattlesTTLMins  int `json:"public_battles_ttl_minutes"`
	// Optional stat prompt template used when asking the generative service
	// for a creature proposal. Use the token {{label}} where the
	// classification label will be substituted.
	StatPrompt string `json:"stat_prompt"`
}

// LoadedConfig contains the validated server configuration.
type LoadedConfig struct {
	Rules              Rules
	ServerAddress      string
	MoveTimeout        time.Duration
	CreaturesPerPlayer int
	DrawTime           time.Duration
	PublicBattlesTTL   time.Duration
	StatPromptTemplate string
}

// DefaultRules are used when the config file omits the rules block. They
// mirror the ranges the battle engine was balanced against.
func DefaultRules() Rules {
	return Rules{
		HitPoints:     Range{Min: 20, Max: 250},
		Attack:        Range{Min: 10, Max: 200},
		Defense:       Range{Min: 10, Max: 200},
		Speed:         Range{Min: 10, Max: 200},
		PointBudget:   500,
		Power:         Range{Min: 10, Max: 100},
		EffectPercent: Range{Min: 1, Max: 50},
		HealAmount:    Range{Min: 5, Max: 60},
		StunChance:    Range{Min: 5, Max: 80},
		Accuracy:      Range{Min: 30, Max: 100},
		Duration:      Range{Min: 1, Max: 5},
		ModifierCap:   50,
	}
}

// Validate checks the rule set for internal consistency. An inconsistent
// rule set is a fatal startup error: the server must not silently proceed
// with bounds that cannot be satisfied.
func (r Rules) Validate() error {
	check := func(name string, rg Range) error {
		if rg.Min > rg.Max {
			return fmt.Errorf("rules.%s: min %d exceeds max %d", name, rg.Min, rg.Max)
		}
		if rg.Min < 0 {
			return fmt.Errorf("rules.%s: min %d is negative", name, rg.Min)
		}
		return nil
	}
	ranges := []struct {
		name string
		rg   Range
	}{
		{"hit_points", r.HitPoints},
		{"attack", r.Attack},
		{"defense", r.Defense},
		{"speed", r.Speed},
		{"power", r.Power},
		{"effect_percent", r.EffectPercent},
		{"heal_amount", r.HealAmount},
		{"stun_chance", r.StunChance},
		{"accuracy", r.Accuracy},
		{"duration", r.Duration},
	}
	for _, e := range ranges {
		if err := check(e.name, e.rg); err != nil {
			return err
		}
	}
	minSum := r.HitPoints.Min + r.Attack.Min + r.Defense.Min + r.Speed.Min
	if r.PointBudget < minSum {
		return fmt.Errorf("rules.point_budget %d is below the sum of stat minimums %d", r.PointBudget, minSum)
	}
	if r.ModifierCap <= 0 || r.ModifierCap > 100 {
		return fmt.Errorf("rules.modifier_cap %d must be in (0,100]", r.ModifierCap)
	}
	return nil
}

// LoadConfig reads the configuration file at path. Missing file or invalid
// rules are returned as errors so main can abort startup.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	rules := DefaultRules()
	if rc.Rules != nil {
		rules = *rc.Rules
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	moveTimeout := 45 * time.Second
	if rc.MoveTimeoutSeconds > 0 {
		moveTimeout = time.Duration(rc.MoveTimeoutSeconds) * time.Second
	}
	perPlayer := 3
	if rc.CreaturesPerPlayer > 0 {
		perPlayer = rc.CreaturesPerPlayer
	}
	drawTime := 180 * time.Second
	if rc.DrawTimeSeconds > 0 {
		drawTime = time.Duration(rc.DrawTimeSeconds) * time.Second
	}
	ttl := 5 * time.Minute
	if rc.PublicBattlesTTLMins > 0 {
		ttl = time.Duration(rc.PublicBattlesTTLMins) * time.Minute
	}

	return &LoadedConfig{
		Rules:              rules,
		ServerAddress:      addr,
		MoveTimeout:        moveTimeout,
		CreaturesPerPlayer: perPlayer,
		DrawTime:           drawTime,
		PublicBattlesTTL:   ttl,
		StatPromptTemplate: strings.TrimSpace(rc.StatPrompt),
	}, nil
}
