package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

var (
	// ErrBattleNotInProgress is returned when resolution is requested for a
	// battle that is not running.
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	// ErrMovesNotSubmitted is returned when a player has not queued a move.
	ErrMovesNotSubmitted = errors.New("both players must submit a move before resolving")
)

// activeCreature returns the player's creature currently on the field.
func activeCreature(p *game.Player) *game.Creature {
	for i := range p.Creatures {
		if p.Creatures[i].IsActive && !p.Creatures[i].IsFainted {
			return &p.Creatures[i]
		}
	}
	return nil
}

// queuedMove resolves the player's pending selection against the active
// creature's move list. Out-of-range indexes fall back to the first move;
// the API layer rejects them up front so this only covers state drift.
func queuedMove(p *game.Player, c *game.Creature) game.Move {
	idx := 0
	if p.PendingMoveIndex != nil {
		idx = *p.PendingMoveIndex
	}
	if idx < 0 || idx >= len(c.Moves) {
		idx = 0
	}
	return c.Moves[idx]
}

// ResolveTurn resolves one full turn of the battle in place: both queued
// moves execute in speed order, faints and auto-switches apply, modifiers
// tick down and the turn record is appended to the battle log. The same
// battle state and seed always produce the same outcome.
func ResolveTurn(b *game.Battle, rules config.Rules) error {
	if b.Status != game.StatusInProgress {
		return ErrBattleNotInProgress
	}
	if len(b.Players) != 2 {
		return fmt.Errorf("battle %s has %d players, expected 2", b.JoinCode, len(b.Players))
	}
	p1, p2 := &b.Players[0], &b.Players[1]
	if !p1.HasSubmittedMove || !p2.HasSubmittedMove {
		return ErrMovesNotSubmitted
	}
	c1, c2 := activeCreature(p1), activeCreature(p2)
	if c1 == nil || c2 == nil {
		return errors.New("a player has no active creature")
	}

	turn := b.TurnCount + 1
	rng := NewTurnRand(b.Seed, turn)
	events := make([]game.TurnEvent, 0, 8)

	a1 := &actor{player: p1, creature: c1, move: queuedMove(p1, c1), teamIdx: 0}
	a2 := &actor{player: p2, creature: c2, move: queuedMove(p2, c2), teamIdx: 1}

	first, second := a1, a2
	s1 := effectiveStat(c1, game.StatSpeed, rules.ModifierCap)
	s2 := effectiveStat(c2, game.StatSpeed, rules.ModifierCap)
	// Speed ties resolve to the first team so the ordering stays
	// deterministic instead of consuming a roll.
	if s2 > s1 {
		first, second = a2, a1
	}

	act(rng, first, second, rules, &events)
	// A creature that fainted to the first action loses its queued move.
	if !second.creature.IsFainted {
		act(rng, second, first, rules, &events)
	}

	bringReserve(p1, &events)
	bringReserve(p2, &events)

	for _, p := range []*game.Player{p1, p2} {
		for i := range p.Creatures {
			if !p.Creatures[i].IsFainted {
				tickModifiers(&p.Creatures[i])
			}
		}
	}

	p1.HasSubmittedMove = false
	p2.HasSubmittedMove = false
	p1.PendingMoveIndex = nil
	p2.PendingMoveIndex = nil

	b.TurnCount = turn
	finalize(b, p1, p2, &events)
	b.Log = append(b.Log, game.TurnRecord{Turn: turn, Events: events})
	b.LastTurnSummary = summarize(events)
	if b.Status == game.StatusInProgress {
		b.Phase = game.PhaseResolved
	}
	return nil
}

// act performs one actor's action, honoring a pending stun, and applies
// faint state to whichever creature dropped to zero.
func act(rng *rand.Rand, att, def *actor, rules config.Rules, events *[]game.TurnEvent) {
	c := att.creature
	if c.SkipNextTurn {
		c.SkipNextTurn = false
		*events = append(*events, game.TurnEvent{
			Type:     game.EventSkip,
			Player:   att.player.PlayerName,
			Creature: c.Name,
			Message:  fmt.Sprintf("%s is stunned and cannot move!", c.Name),
		})
	} else {
		executeMove(rng, att, def, rules, events)
	}
	for _, a := range []*actor{att, def} {
		cc := a.creature
		if cc.CurrentHitPoints <= 0 && !cc.IsFainted {
			cc.IsFainted = true
			cc.IsActive = false
			*events = append(*events, game.TurnEvent{
				Type:     game.EventFaint,
				Player:   a.player.PlayerName,
				Creature: cc.Name,
				Message:  fmt.Sprintf("%s fainted!", cc.Name),
			})
		}
	}
}

// bringReserve promotes the next healthy creature in slot order when the
// player's active creature fainted this turn.
func bringReserve(p *game.Player, events *[]game.TurnEvent) {
	if activeCreature(p) != nil {
		return
	}
	for i := range p.Creatures {
		c := &p.Creatures[i]
		if !c.IsFainted {
			c.IsActive = true
			*events = append(*events, game.TurnEvent{
				Type:     game.EventSwitch,
				Player:   p.PlayerName,
				Creature: c.Name,
				Message:  fmt.Sprintf("%s sent out %s!", p.PlayerName, c.Name),
			})
			return
		}
	}
}

func teamDefeated(p *game.Player) bool {
	for i := range p.Creatures {
		if !p.Creatures[i].IsFainted {
			return false
		}
	}
	return true
}

// finalize checks the win condition after the turn's actions. Both teams
// falling on the same turn is a draw.
func finalize(b *game.Battle, p1, p2 *game.Player, events *[]game.TurnEvent) {
	d1, d2 := teamDefeated(p1), teamDefeated(p2)
	switch {
	case d1 && d2:
		b.Status = game.StatusFinished
		b.Result = game.ResultDraw
		b.Message = "Both teams were wiped out. The battle is a draw."
		*events = append(*events, game.TurnEvent{
			Type:    game.EventDraw,
			Message: b.Message,
		})
	case d2:
		b.Status = game.StatusFinished
		b.Result = game.ResultTeam1
		b.Winner = p1.PlayerUUID
		b.Message = fmt.Sprintf("%s wins the battle!", p1.PlayerName)
		*events = append(*events, game.TurnEvent{
			Type:    game.EventVictory,
			Player:  p1.PlayerName,
			Message: b.Message,
		})
	case d1:
		b.Status = game.StatusFinished
		b.Result = game.ResultTeam2
		b.Winner = p2.PlayerUUID
		b.Message = fmt.Sprintf("%s wins the battle!", p2.PlayerName)
		*events = append(*events, game.TurnEvent{
			Type:    game.EventVictory,
			Player:  p2.PlayerName,
			Message: b.Message,
		})
	}
}

func summarize(events []game.TurnEvent) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, " ")
}
