package engine

import "github.com/abhishek-mmvi/CrayonMonsters/internal/game"

// --- Modifier helpers --------------------------------------------------

func baseStat(c *game.Creature, stat game.StatName) int {
	switch stat {
	case game.StatAttack:
		return c.Attack
	case game.StatDefense:
		return c.Defense
	case game.StatSpeed:
		return c.Speed
	}
	return 0
}

// effectiveStat applies the creature's active modifiers to a base stat.
// The net percentage is capped at ±cap and the result never drops below 1.
func effectiveStat(c *game.Creature, stat game.StatName, cap int) int {
	pct := 0
	for i := range c.Modifiers {
		if c.Modifiers[i].Stat == stat {
			pct += c.Modifiers[i].Percent
		}
	}
	if pct > cap {
		pct = cap
	}
	if pct < -cap {
		pct = -cap
	}
	v := int(float64(baseStat(c, stat)) * (1.0 + float64(pct)/100.0))
	if v < 1 {
		v = 1
	}
	return v
}

// applyModifier records a stat adjustment on the creature. A modifier from
// the same source move on the same stat replaces the previous entry so
// repeated casts refresh instead of stacking without bound.
func applyModifier(c *game.Creature, stat game.StatName, percent, duration int, source string) {
	for i := range c.Modifiers {
		if c.Modifiers[i].Stat == stat && c.Modifiers[i].Source == source {
			c.Modifiers[i].Percent = percent
			c.Modifiers[i].RemainingTurns = duration
			return
		}
	}
	c.Modifiers = append(c.Modifiers, game.Modifier{
		Stat:           stat,
		Percent:        percent,
		RemainingTurns: duration,
		Source:         source,
	})
}

// tickModifiers decrements remaining durations and drops expired entries.
// Called once per creature at end of turn, so a modifier with duration N
// affects the turn it was applied plus the following N-1 turns.
func tickModifiers(c *game.Creature) {
	kept := c.Modifiers[:0]
	for _, m := range c.Modifiers {
		m.RemainingTurns--
		if m.RemainingTurns > 0 {
			kept = append(kept, m)
		}
	}
	c.Modifiers = kept
}
