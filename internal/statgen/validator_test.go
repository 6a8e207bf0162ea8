package statgen

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

func testRules() config.Rules { return config.DefaultRules() }

func checkLegal(t *testing.T, def game.CreatureDefinition, rules config.Rules) {
	t.Helper()
	if !rules.HitPoints.Contains(def.HitPoints) {
		t.Errorf("hp %d outside %+v", def.HitPoints, rules.HitPoints)
	}
	if !rules.Attack.Contains(def.Attack) {
		t.Errorf("attack %d outside %+v", def.Attack, rules.Attack)
	}
	if !rules.Defense.Contains(def.Defense) {
		t.Errorf("defense %d outside %+v", def.Defense, rules.Defense)
	}
	if !rules.Speed.Contains(def.Speed) {
		t.Errorf("speed %d outside %+v", def.Speed, rules.Speed)
	}
	if sum := def.HitPoints + def.Attack + def.Defense + def.Speed; sum > rules.PointBudget {
		t.Errorf("stat sum %d exceeds budget %d", sum, rules.PointBudget)
	}
	if _, ok := game.ParseNature(string(def.Nature)); !ok {
		t.Errorf("invalid nature %q", def.Nature)
	}
	if len(def.Moves) != game.MovesPerCreature {
		t.Fatalf("got %d moves, want %d", len(def.Moves), game.MovesPerCreature)
	}
	hasDamage := false
	for _, m := range def.Moves {
		if !rules.Accuracy.Contains(m.Accuracy) {
			t.Errorf("move %q accuracy %d outside %+v", m.Name, m.Accuracy, rules.Accuracy)
		}
		switch m.Kind {
		case game.EffectDamage:
			hasDamage = true
			if !rules.Power.Contains(m.Power) {
				t.Errorf("move %q power %d outside %+v", m.Name, m.Power, rules.Power)
			}
		case game.EffectBuff, game.EffectDebuff:
			if !rules.EffectPercent.Contains(m.Magnitude) {
				t.Errorf("move %q magnitude %d outside %+v", m.Name, m.Magnitude, rules.EffectPercent)
			}
			if !rules.Duration.Contains(m.DurationTurns) {
				t.Errorf("move %q duration %d outside %+v", m.Name, m.DurationTurns, rules.Duration)
			}
		case game.EffectStun:
			if !rules.StunChance.Contains(m.Chance) {
				t.Errorf("move %q chance %d outside %+v", m.Name, m.Chance, rules.StunChance)
			}
		case game.EffectHeal:
			if !rules.HealAmount.Contains(m.Magnitude) {
				t.Errorf("move %q heal %d outside %+v", m.Name, m.Magnitude, rules.HealAmount)
			}
		default:
			t.Errorf("move %q has unknown kind %q", m.Name, m.Kind)
		}
	}
	if !hasDamage {
		t.Error("definition has no damage move")
	}
}

func TestValidateClampsOutOfRangeStats(t *testing.T) {
	rules := testRules()
	p := ParseProposal(`{"name":"Inferno Cat","nature":"fire","hp":9000,"attack":3,"defense":120,"speed":80,
		"moves":[{"name":"Claw","kind":"damage","power":400,"accuracy":150}]}`)
	def := Validate("inferno cat", p, rules)
	checkLegal(t, def, rules)
	if def.Name != "Inferno Cat" {
		t.Errorf("name = %q", def.Name)
	}
	if def.Nature != game.NatureFire {
		t.Errorf("nature = %q", def.Nature)
	}
	if def.Attack < rules.Attack.Min {
		t.Errorf("attack %d below min", def.Attack)
	}
}

func TestValidateBudgetScalesProportionally(t *testing.T) {
	rules := testRules()
	// 200+200+200+200 = 800 over a 500 budget, equal ratios
	p := ParseProposal(`{"name":"Maxed","nature":"metal","hp":200,"attack":200,"defense":200,"speed":200,
		"moves":[{"name":"Slam","kind":"damage","power":50,"accuracy":90}]}`)
	def := Validate("maxed", p, rules)
	checkLegal(t, def, rules)
	if def.Attack != def.Defense || def.Defense != def.Speed {
		t.Errorf("equal inputs scaled unevenly: atk=%d def=%d spd=%d", def.Attack, def.Defense, def.Speed)
	}
}

func TestValidateUnderBudgetUntouched(t *testing.T) {
	rules := testRules()
	p := ParseProposal(`{"name":"Modest","nature":"air","hp":100,"attack":80,"defense":70,"speed":60,
		"moves":[{"name":"Gust","kind":"damage","power":40,"accuracy":85}]}`)
	def := Validate("modest", p, rules)
	if def.HitPoints != 100 || def.Attack != 80 || def.Defense != 70 || def.Speed != 60 {
		t.Errorf("in-bounds stats were altered: %+v", def)
	}
}

func TestValidateMalformedFallsBack(t *testing.T) {
	rules := testRules()
	def := Validate("snow owl", ParseProposal("sorry, I can't help with that"), rules)
	checkLegal(t, def, rules)
	if !reflect.DeepEqual(def, FallbackDefinition("snow owl", rules)) {
		t.Error("malformed proposal did not use the deterministic fallback")
	}
}

func TestValidateAbsentFallsBack(t *testing.T) {
	rules := testRules()
	def := Validate("cactus", ParseProposal(""), rules)
	checkLegal(t, def, rules)
	if !reflect.DeepEqual(def, FallbackDefinition("cactus", rules)) {
		t.Error("absent proposal did not use the deterministic fallback")
	}
}

func TestFallbackDeterministicPerLabel(t *testing.T) {
	rules := testRules()
	a := FallbackDefinition("Fire Dragon", rules)
	b := FallbackDefinition("  fire   dragon ", rules)
	if !reflect.DeepEqual(a.Moves, b.Moves) || a.HitPoints != b.HitPoints || a.Nature != b.Nature {
		t.Error("equivalent labels produced different fallback creatures")
	}
	c := FallbackDefinition("water snake", rules)
	if reflect.DeepEqual(a, c) {
		t.Error("distinct labels produced identical fallback creatures")
	}
	checkLegal(t, a, rules)
	checkLegal(t, c, rules)
}

func TestValidateUnknownMoveKindBecomesWeakDamage(t *testing.T) {
	rules := testRules()
	p := ParseProposal(`{"name":"Trickster","nature":"dark","hp":100,"attack":80,"defense":70,"speed":60,
		"moves":[{"name":"Reality Warp","kind":"instant_win","power":100,"accuracy":100}]}`)
	def := Validate("trickster", p, rules)
	checkLegal(t, def, rules)
	if def.Moves[0].Kind != game.EffectDamage {
		t.Fatalf("kind = %q, want damage", def.Moves[0].Kind)
	}
	if def.Moves[0].Power != rules.Power.Min {
		t.Errorf("unknown kind power = %d, want minimum %d", def.Moves[0].Power, rules.Power.Min)
	}
}

func TestValidatePadsToFourMoves(t *testing.T) {
	rules := testRules()
	p := ParseProposal(`{"name":"Sparse","nature":"ice","hp":100,"attack":80,"defense":70,"speed":60,
		"moves":[{"name":"Chill","kind":"damage","power":40,"accuracy":90}]}`)
	def := Validate("sparse", p, rules)
	checkLegal(t, def, rules)
	if def.Moves[0].Name != "Chill" {
		t.Errorf("proposed move lost: %+v", def.Moves[0])
	}
}

func TestValidateIdempotent(t *testing.T) {
	rules := testRules()
	first := Validate("inferno cat", ParseProposal(`{"name":"Inferno Cat","nature":"fire","hp":9000,
		"attack":300,"defense":1,"speed":80,"moves":[{"name":"Claw","kind":"damage","power":400,"accuracy":150}]}`), rules)

	b, err := json.Marshal(map[string]any{
		"name": first.Name, "nature": first.Nature,
		"hp": first.HitPoints, "attack": first.Attack, "defense": first.Defense, "speed": first.Speed,
		"moves": first.Moves,
	})
	if err != nil {
		t.Fatal(err)
	}
	second := Validate("inferno cat", ParseProposal(string(b)), rules)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("validation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParseProposalStripsFences(t *testing.T) {
	p := ParseProposal("```json\n{\"name\":\"Fenced\",\"nature\":\"water\",\"hp\":100}\n```")
	if p.State != ProposalWellFormed {
		t.Fatalf("state = %v, want well-formed", p.State)
	}
	if p.Raw.Name != "Fenced" {
		t.Errorf("name = %q", p.Raw.Name)
	}
}

func TestFlexIntCoercion(t *testing.T) {
	var raw RawProposal
	if err := json.Unmarshal([]byte(`{"hp":"150","attack":72.9,"defense":null,"speed":"fast"}`), &raw); err != nil {
		t.Fatal(err)
	}
	if !raw.HitPoints.OK || raw.HitPoints.Value != 150 {
		t.Errorf("string int: %+v", raw.HitPoints)
	}
	if !raw.Attack.OK || raw.Attack.Value != 72 {
		t.Errorf("float: %+v", raw.Attack)
	}
	if raw.Defense.OK {
		t.Error("null should not be OK")
	}
	if raw.Speed.OK {
		t.Error("non-numeric string should not be OK")
	}
}
