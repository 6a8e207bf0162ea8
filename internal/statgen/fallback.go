package statgen

import (
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/keys"
)

// labelSeed hashes the canonical label so the same drawing label always
// yields the same fallback creature, across processes and restarts.
func labelSeed(label string) int64 {
	h := fnv.New64a()
	h.Write([]byte(keys.LabelKey(label)))
	return int64(h.Sum64())
}

func titleLabel(label string) string {
	fields := strings.Fields(strings.ToLower(label))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	if len(fields) == 0 {
		return "Mystery Creature"
	}
	return strings.Join(fields, " ")
}

func pickIn(rng *rand.Rand, r config.Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// FallbackDefinition builds a fully legal creature from nothing but the
// label. Used when the generative service is unreachable or its proposal
// cannot be parsed, so team creation never fails on a bad upstream.
func FallbackDefinition(label string, rules config.Rules) game.CreatureDefinition {
	rng := rand.New(rand.NewSource(labelSeed(label)))
	natures := game.Natures()
	nature := natures[rng.Intn(len(natures))]
	name := titleLabel(label)

	def := game.CreatureDefinition{
		Name:      name,
		Label:     label,
		Nature:    nature,
		HitPoints: pickIn(rng, rules.HitPoints),
		Attack:    pickIn(rng, rules.Attack),
		Defense:   pickIn(rng, rules.Defense),
		Speed:     pickIn(rng, rules.Speed),
		Moves: []game.Move{
			{
				Name:     name + " Strike",
				Kind:     game.EffectDamage,
				Power:    pickIn(rng, rules.Power),
				Accuracy: pickIn(rng, rules.Accuracy),
				Target:   game.TargetOpponent,
			},
			{
				Name:          "Rally",
				Kind:          game.EffectBuff,
				Magnitude:     pickIn(rng, rules.EffectPercent),
				Accuracy:      rules.Accuracy.Max,
				Target:        game.TargetSelf,
				Stat:          game.StatAttack,
				DurationTurns: pickIn(rng, rules.Duration),
			},
			{
				Name:      "Recover",
				Kind:      game.EffectHeal,
				Magnitude: pickIn(rng, rules.HealAmount),
				Accuracy:  rules.Accuracy.Max,
				Target:    game.TargetSelf,
			},
			{
				Name:     "Daze",
				Kind:     game.EffectStun,
				Chance:   pickIn(rng, rules.StunChance),
				Accuracy: pickIn(rng, rules.Accuracy),
				Target:   game.TargetOpponent,
			},
		},
	}
	enforceBudget(&def, rules)
	return def
}
