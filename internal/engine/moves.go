package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

// actor bundles one side's state for the duration of a turn.
type actor struct {
	player   *game.Player
	creature *game.Creature
	move     game.Move
	teamIdx  int
}

// computeDamage implements the damage formula:
//
//	dmg = floor(effAtk * power/100 * 100/(100+effDef) * natureMult)
//
// with a floor of 1 so a landed hit always costs something.
func computeDamage(att, def *game.Creature, power int, rules config.Rules) int {
	effAtk := effectiveStat(att, game.StatAttack, rules.ModifierCap)
	effDef := effectiveStat(def, game.StatDefense, rules.ModifierCap)
	mult := game.Multiplier(att.Nature, def.Nature)
	dmg := int(math.Floor(float64(effAtk) * float64(power) / 100.0 * 100.0 / float64(100+effDef) * mult))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

func effectivenessText(mult float64) string {
	switch {
	case mult >= 2.0:
		return " It's devastating!"
	case mult > 1.0:
		return " It's very effective!"
	case mult < 1.0:
		return " It's not very effective."
	}
	return ""
}

// executeMove resolves one creature's queued move against the opposing
// actor and appends the resulting events. The accuracy roll happens first;
// a miss produces exactly one event and no other state change.
func executeMove(rng *rand.Rand, att, def *actor, rules config.Rules, events *[]game.TurnEvent) {
	mv := att.move
	c := att.creature

	if !rollPercent(rng, mv.Accuracy) {
		*events = append(*events, game.TurnEvent{
			Type:     game.EventMiss,
			Player:   att.player.PlayerName,
			Creature: c.Name,
			Move:     mv.Name,
			Message:  fmt.Sprintf("%s used %s, but it missed!", c.Name, mv.Name),
		})
		return
	}

	switch mv.Kind {
	case game.EffectDamage:
		target := def.creature
		dmg := computeDamage(c, target, mv.Power, rules)
		target.CurrentHitPoints -= dmg
		if target.CurrentHitPoints < 0 {
			target.CurrentHitPoints = 0
		}
		mult := game.Multiplier(c.Nature, target.Nature)
		*events = append(*events, game.TurnEvent{
			Type:        game.EventDamage,
			Player:      att.player.PlayerName,
			Creature:    c.Name,
			Move:        mv.Name,
			Target:      target.Name,
			Amount:      dmg,
			RemainingHP: target.CurrentHitPoints,
			Message: fmt.Sprintf("%s used %s on %s for %d damage.%s",
				c.Name, mv.Name, target.Name, dmg, effectivenessText(mult)),
		})

	case game.EffectBuff:
		pct := mv.Magnitude
		applyModifier(c, mv.Stat, pct, mv.DurationTurns, mv.Name)
		*events = append(*events, game.TurnEvent{
			Type:     game.EventBuff,
			Player:   att.player.PlayerName,
			Creature: c.Name,
			Move:     mv.Name,
			Target:   c.Name,
			Stat:     mv.Stat,
			Amount:   pct,
			Message:  fmt.Sprintf("%s used %s: %s rose by %d%%.", c.Name, mv.Name, mv.Stat, pct),
		})

	case game.EffectDebuff:
		target := def.creature
		pct := -mv.Magnitude
		applyModifier(target, mv.Stat, pct, mv.DurationTurns, mv.Name)
		*events = append(*events, game.TurnEvent{
			Type:     game.EventDebuff,
			Player:   att.player.PlayerName,
			Creature: c.Name,
			Move:     mv.Name,
			Target:   target.Name,
			Stat:     mv.Stat,
			Amount:   pct,
			Message: fmt.Sprintf("%s used %s: %s's %s fell by %d%%.",
				c.Name, mv.Name, target.Name, mv.Stat, mv.Magnitude),
		})

	case game.EffectStun:
		target := def.creature
		if rollPercent(rng, mv.Chance) {
			target.SkipNextTurn = true
			*events = append(*events, game.TurnEvent{
				Type:     game.EventStun,
				Player:   att.player.PlayerName,
				Creature: c.Name,
				Move:     mv.Name,
				Target:   target.Name,
				Message:  fmt.Sprintf("%s used %s: %s is stunned and will skip its next turn!", c.Name, mv.Name, target.Name),
			})
		} else {
			*events = append(*events, game.TurnEvent{
				Type:     game.EventStunFail,
				Player:   att.player.PlayerName,
				Creature: c.Name,
				Move:     mv.Name,
				Target:   target.Name,
				Message:  fmt.Sprintf("%s used %s, but %s resisted.", c.Name, mv.Name, target.Name),
			})
		}

	case game.EffectHeal:
		healed := mv.Magnitude
		if c.CurrentHitPoints+healed > c.MaxHitPoints {
			healed = c.MaxHitPoints - c.CurrentHitPoints
		}
		c.CurrentHitPoints += healed
		*events = append(*events, game.TurnEvent{
			Type:        game.EventHeal,
			Player:      att.player.PlayerName,
			Creature:    c.Name,
			Move:        mv.Name,
			Target:      c.Name,
			Amount:      healed,
			RemainingHP: c.CurrentHitPoints,
			Message:     fmt.Sprintf("%s used %s and recovered %d HP.", c.Name, mv.Name, healed),
		})
	}
}
