package service

import (
	"context"
	"errors"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/dedupe"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/keys"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/logging"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/statgen"
)

// BattleRepo is the minimal repository interface the battle services need.
// Using a small interface simplifies testing.
type BattleRepo interface {
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error
}

// DefinitionRepo is the cache of validated creature definitions.
type DefinitionRepo interface {
	GetCachedDefinition(labelKey string) (*game.CreatureDefinition, error)
	SaveCachedDefinition(labelKey string, def game.CreatureDefinition) error
}

// StatProposer asks the generative service for a raw stat proposal. A nil
// proposer is valid and routes every label to the deterministic fallback.
type StatProposer interface {
	ProposeStats(ctx context.Context, label string) (string, error)
}

type CreateTeamRequest struct {
	PlayerUUID string
	// Labels are the classification labels of the player's drawings, in
	// team order.
	Labels []string
}

var (
	ErrBattleNotFound     = errors.New("battle not found")
	ErrPlayerNotFound     = errors.New("player not part of battle")
	ErrTeamAlreadyCreated = errors.New("team already created")
	ErrInvalidTeamSize    = errors.New("wrong number of creature labels")
	ErrEmptyLabel         = errors.New("creature label must not be empty")
)

// EnsureDefinition returns the battle-legal creature definition for a
// label: cached if seen before, otherwise generated, validated and cached.
// Concurrent requests for the same label share one generation. Generation
// failures degrade to the deterministic fallback and are not cached, so a
// later request can still try the generative service.
func EnsureDefinition(ctx context.Context, defs DefinitionRepo, proposer StatProposer, label string, rules config.Rules) (game.CreatureDefinition, error) {
	key := keys.LabelKey(label)
	if key == "" {
		return game.CreatureDefinition{}, ErrEmptyLabel
	}
	if cached, err := defs.GetCachedDefinition(key); err == nil && cached != nil {
		return *cached, nil
	}

	v, err, _ := dedupe.StatGeneration.Do(key, func() (interface{}, error) {
		// Re-check under the flight lock: the first caller may have
		// populated the cache while we waited.
		if cached, err := defs.GetCachedDefinition(key); err == nil && cached != nil {
			return *cached, nil
		}
		if proposer == nil {
			return statgen.Validate(label, statgen.Proposal{State: statgen.ProposalAbsent}, rules), nil
		}
		text, err := proposer.ProposeStats(ctx, label)
		if err != nil {
			logging.Warn("stat generation failed; using fallback", logging.Fields{
				"label": label, "error": err.Error(),
			})
			return statgen.Validate(label, statgen.Proposal{State: statgen.ProposalAbsent}, rules), nil
		}
		p := statgen.ParseProposal(text)
		if p.State != statgen.ProposalWellFormed {
			logging.Warn("unusable stat proposal; using fallback", logging.Fields{"label": label})
		}
		def := statgen.Validate(label, p, rules)
		if p.State == statgen.ProposalWellFormed {
			if saveErr := defs.SaveCachedDefinition(key, def); saveErr != nil {
				logging.Error("failed to cache creature definition", saveErr, logging.Fields{"label_key": key})
			}
		}
		return def, nil
	})
	if err != nil {
		return game.CreatureDefinition{}, err
	}
	return v.(game.CreatureDefinition), nil
}

// CreateTeam builds and stores a player's team inside a battle. Every
// label resolves to a validated definition; the battle moves to starting
// once both players have created their teams.
func CreateTeam(ctx context.Context, repo BattleRepo, defs DefinitionRepo, proposer StatProposer, battleID uint, req CreateTeamRequest, rules config.Rules, creaturesPerPlayer int) error {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return ErrBattleNotFound
	}

	var p *game.Player
	for i := range b.Players {
		if b.Players[i].PlayerUUID == req.PlayerUUID {
			p = &b.Players[i]
			break
		}
	}
	if p == nil {
		return ErrPlayerNotFound
	}
	if p.HasCreated || len(p.Creatures) > 0 {
		return ErrTeamAlreadyCreated
	}
	if len(req.Labels) != creaturesPerPlayer {
		return ErrInvalidTeamSize
	}

	creatures := make([]game.Creature, 0, creaturesPerPlayer)
	for slot, label := range req.Labels {
		def, err := EnsureDefinition(ctx, defs, proposer, label, rules)
		if err != nil {
			return err
		}
		creatures = append(creatures, def.NewCreature(slot))
	}

	p.Creatures = creatures
	p.HasCreated = true
	b.Message = "A player finished drawing their team."

	allCreated := len(b.Players) == 2
	for i := range b.Players {
		if !b.Players[i].HasCreated {
			allCreated = false
		}
	}
	if allCreated {
		b.Status = game.StatusStarting
		b.Message = "Both teams are ready."
	}
	return repo.UpdateBattle(b)
}
