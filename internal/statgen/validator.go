package statgen

import (
	"fmt"
	"strings"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

// Validate converts a proposal into a battle-legal creature definition.
// It never rejects: out-of-bounds values are clamped, missing values are
// filled, and an unusable proposal falls back to the deterministic
// label-derived creature. The output always satisfies every rule bound,
// carries exactly four moves and includes at least one damage move, so
// validating its own output is a no-op.
func Validate(label string, p Proposal, rules config.Rules) game.CreatureDefinition {
	if p.State != ProposalWellFormed {
		return FallbackDefinition(label, rules)
	}
	raw := p.Raw

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = titleLabel(label)
	}
	nature, ok := game.ParseNature(raw.Nature)
	if !ok {
		natures := game.Natures()
		idx := int(uint64(labelSeed(label)) % uint64(len(natures)))
		nature = natures[idx]
	}

	stat := func(f flexInt, r config.Range) int {
		if f.OK {
			return r.Clamp(f.Value)
		}
		return (r.Min + r.Max) / 2
	}

	def := game.CreatureDefinition{
		Name:      name,
		Label:     label,
		Nature:    nature,
		HitPoints: stat(raw.HitPoints, rules.HitPoints),
		Attack:    stat(raw.Attack, rules.Attack),
		Defense:   stat(raw.Defense, rules.Defense),
		Speed:     stat(raw.Speed, rules.Speed),
		Moves:     validateMoves(raw.Moves, label, rules),
	}
	enforceBudget(&def, rules)
	return def
}

// enforceBudget scales the four base stats down proportionally when their
// sum exceeds the point budget, preserving relative ratios, then settles
// any rounding remainder off the largest stats.
func enforceBudget(def *game.CreatureDefinition, rules config.Rules) {
	sum := def.HitPoints + def.Attack + def.Defense + def.Speed
	if sum <= rules.PointBudget {
		return
	}
	scale := float64(rules.PointBudget) / float64(sum)
	stats := []struct {
		v   *int
		min int
	}{
		{&def.HitPoints, rules.HitPoints.Min},
		{&def.Attack, rules.Attack.Min},
		{&def.Defense, rules.Defense.Min},
		{&def.Speed, rules.Speed.Min},
	}
	for _, s := range stats {
		scaled := int(float64(*s.v) * scale)
		if scaled < s.min {
			scaled = s.min
		}
		*s.v = scaled
	}
	// Min clamps can leave the sum marginally over budget; shave the
	// largest stat that still has room.
	for {
		sum = def.HitPoints + def.Attack + def.Defense + def.Speed
		if sum <= rules.PointBudget {
			return
		}
		var largest *int
		largestVal := -1
		for _, s := range stats {
			if *s.v > s.min && *s.v > largestVal {
				largest = s.v
				largestVal = *s.v
			}
		}
		if largest == nil {
			return
		}
		*largest--
	}
}

func parseKind(s string) (game.EffectKind, bool) {
	switch game.EffectKind(strings.ToLower(strings.TrimSpace(s))) {
	case game.EffectDamage:
		return game.EffectDamage, true
	case game.EffectBuff:
		return game.EffectBuff, true
	case game.EffectDebuff:
		return game.EffectDebuff, true
	case game.EffectStun:
		return game.EffectStun, true
	case game.EffectHeal:
		return game.EffectHeal, true
	}
	return game.EffectDamage, false
}

func parseStat(s string) game.StatName {
	switch game.StatName(strings.ToLower(strings.TrimSpace(s))) {
	case game.StatDefense:
		return game.StatDefense
	case game.StatSpeed:
		return game.StatSpeed
	}
	return game.StatAttack
}

// sanitizeMove forces one raw move into a legal shape for its kind. An
// unrecognized kind becomes a minimum-power damage move rather than being
// dropped, so a creative proposal still costs the proposer tempo instead
// of shrinking the move list.
func sanitizeMove(rm RawMove, idx int, rules config.Rules) game.Move {
	kind, known := parseKind(rm.Kind)
	mv := game.Move{Kind: kind, Description: strings.TrimSpace(rm.Description)}

	mv.Name = strings.TrimSpace(rm.Name)
	if mv.Name == "" {
		mv.Name = fmt.Sprintf("Move %d", idx+1)
	}
	if rm.Accuracy.OK {
		mv.Accuracy = rules.Accuracy.Clamp(rm.Accuracy.Value)
	} else {
		mv.Accuracy = rules.Accuracy.Max
	}

	switch kind {
	case game.EffectDamage:
		mv.Target = game.TargetOpponent
		if !known || !rm.Power.OK {
			mv.Power = rules.Power.Min
		} else {
			mv.Power = rules.Power.Clamp(rm.Power.Value)
		}
	case game.EffectBuff:
		mv.Target = game.TargetSelf
		mv.Stat = parseStat(rm.Stat)
		mv.Magnitude = rules.EffectPercent.Clamp(rm.Magnitude.Value)
		mv.DurationTurns = rules.Duration.Clamp(rm.Duration.Value)
	case game.EffectDebuff:
		mv.Target = game.TargetOpponent
		mv.Stat = parseStat(rm.Stat)
		mv.Magnitude = rules.EffectPercent.Clamp(rm.Magnitude.Value)
		mv.DurationTurns = rules.Duration.Clamp(rm.Duration.Value)
	case game.EffectStun:
		mv.Target = game.TargetOpponent
		mv.Chance = rules.StunChance.Clamp(rm.Chance.Value)
	case game.EffectHeal:
		mv.Target = game.TargetSelf
		mv.Magnitude = rules.HealAmount.Clamp(rm.Magnitude.Value)
	}
	return mv
}

// validateMoves produces exactly MovesPerCreature legal moves with at
// least one damage move among them.
func validateMoves(raw []RawMove, label string, rules config.Rules) []game.Move {
	moves := make([]game.Move, 0, game.MovesPerCreature)
	for i, rm := range raw {
		if len(moves) == game.MovesPerCreature {
			break
		}
		moves = append(moves, sanitizeMove(rm, i, rules))
	}

	fallback := FallbackDefinition(label, rules)
	for i := 0; len(moves) < game.MovesPerCreature; i++ {
		moves = append(moves, fallback.Moves[i%len(fallback.Moves)])
	}

	hasDamage := false
	for _, m := range moves {
		if m.Kind == game.EffectDamage {
			hasDamage = true
			break
		}
	}
	if !hasDamage {
		moves[len(moves)-1] = fallback.Moves[0]
	}
	return moves
}
