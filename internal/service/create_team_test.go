package service

import (
	"context"
	"errors"
	"testing"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

type fakeProposer struct {
	calls    int
	response string
	err      error
}

func (f *fakeProposer) ProposeStats(ctx context.Context, label string) (string, error) {
	f.calls++
	return f.response, f.err
}

func lobbyBattle(id uint) *game.Battle {
	b := &game.Battle{
		JoinCode: "ABC123",
		Status:   game.StatusWaitingForPlayers,
		Players: []game.Player{
			{PlayerUUID: "p1", PlayerName: "P1"},
			{PlayerUUID: "p2", PlayerName: "P2"},
		},
	}
	b.ID = id
	return b
}

func TestCreateTeam_FallbackWithoutProposer(t *testing.T) {
	rules := config.DefaultRules()
	mr := newMockRepo()
	mr.battles[1] = lobbyBattle(1)

	req := CreateTeamRequest{PlayerUUID: "p1", Labels: []string{"cat", "dog", "owl"}}
	if err := CreateTeam(context.Background(), mr, mr, nil, 1, req, rules, 3); err != nil {
		t.Fatal(err)
	}
	p := mr.battles[1].Players[0]
	if !p.HasCreated {
		t.Fatal("HasCreated not set")
	}
	if len(p.Creatures) != 3 {
		t.Fatalf("got %d creatures, want 3", len(p.Creatures))
	}
	for i, c := range p.Creatures {
		if c.Slot != i {
			t.Errorf("creature %d slot = %d", i, c.Slot)
		}
		if len(c.Moves) != game.MovesPerCreature {
			t.Errorf("creature %q has %d moves", c.Name, len(c.Moves))
		}
		if c.CurrentHitPoints != c.MaxHitPoints {
			t.Errorf("creature %q not at full hp", c.Name)
		}
	}
}

func TestCreateTeam_WrongSize(t *testing.T) {
	rules := config.DefaultRules()
	mr := newMockRepo()
	mr.battles[1] = lobbyBattle(1)

	req := CreateTeamRequest{PlayerUUID: "p1", Labels: []string{"cat"}}
	if err := CreateTeam(context.Background(), mr, mr, nil, 1, req, rules, 3); err != ErrInvalidTeamSize {
		t.Fatalf("expected ErrInvalidTeamSize, got %v", err)
	}
}

func TestCreateTeam_OnlyOnce(t *testing.T) {
	rules := config.DefaultRules()
	mr := newMockRepo()
	mr.battles[1] = lobbyBattle(1)

	req := CreateTeamRequest{PlayerUUID: "p1", Labels: []string{"cat", "dog", "owl"}}
	if err := CreateTeam(context.Background(), mr, mr, nil, 1, req, rules, 3); err != nil {
		t.Fatal(err)
	}
	if err := CreateTeam(context.Background(), mr, mr, nil, 1, req, rules, 3); err != ErrTeamAlreadyCreated {
		t.Fatalf("expected ErrTeamAlreadyCreated, got %v", err)
	}
}

func TestCreateTeam_BothReadyMovesToStarting(t *testing.T) {
	rules := config.DefaultRules()
	mr := newMockRepo()
	mr.battles[1] = lobbyBattle(1)

	for _, uuid := range []string{"p1", "p2"} {
		req := CreateTeamRequest{PlayerUUID: uuid, Labels: []string{"cat", "dog", "owl"}}
		if err := CreateTeam(context.Background(), mr, mr, nil, 1, req, rules, 3); err != nil {
			t.Fatal(err)
		}
	}
	if got := mr.battles[1].Status; got != game.StatusStarting {
		t.Fatalf("status = %s, want %s", got, game.StatusStarting)
	}
}

func TestEnsureDefinition_CachesWellFormedProposal(t *testing.T) {
	rules := config.DefaultRules()
	mr := newMockRepo()
	fp := &fakeProposer{response: `{"name":"Inferno Cat","nature":"fire","hp":100,"attack":80,"defense":60,"speed":70,
		"moves":[{"name":"Claw","kind":"damage","power":50,"accuracy":90}]}`}

	def, err := EnsureDefinition(context.Background(), mr, fp, "Inferno Cat", rules)
	if err != nil {
		t.Fatal(err)
	}
	if def.Name != "Inferno Cat" || def.Nature != game.NatureFire {
		t.Fatalf("unexpected definition: %+v", def)
	}
	if _, ok := mr.defs["inferno_cat"]; !ok {
		t.Fatal("definition was not cached under its canonical key")
	}

	// Second call must hit the cache, not the proposer.
	if _, err := EnsureDefinition(context.Background(), mr, fp, "  inferno   CAT ", rules); err != nil {
		t.Fatal(err)
	}
	if fp.calls != 1 {
		t.Fatalf("proposer called %d times, want 1", fp.calls)
	}
}

func TestEnsureDefinition_ProposerFailureFallsBack(t *testing.T) {
	rules := config.DefaultRules()
	mr := newMockRepo()
	fp := &fakeProposer{err: errors.New("upstream down")}

	def, err := EnsureDefinition(context.Background(), mr, fp, "cactus", rules)
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Moves) != game.MovesPerCreature {
		t.Fatalf("fallback has %d moves", len(def.Moves))
	}
	// Failures are not cached so the generative path can recover later.
	if _, ok := mr.defs["cactus"]; ok {
		t.Fatal("fallback definition should not be cached")
	}
}

func TestEnsureDefinition_EmptyLabel(t *testing.T) {
	rules := config.DefaultRules()
	mr := newMockRepo()
	if _, err := EnsureDefinition(context.Background(), mr, nil, "   ", rules); err != ErrEmptyLabel {
		t.Fatalf("expected ErrEmptyLabel, got %v", err)
	}
}
