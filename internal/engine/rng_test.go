package engine

import "testing"

func TestNewTurnRandRepeatable(t *testing.T) {
	a := NewTurnRand(1234, 3)
	b := NewTurnRand(1234, 3)
	for i := 0; i < 32; i++ {
		if a.Int63() != b.Int63() {
			t.Fatal("same seed and turn produced different streams")
		}
	}
}

func TestNewTurnRandVariesByTurn(t *testing.T) {
	a := NewTurnRand(1234, 1)
	b := NewTurnRand(1234, 2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Int63() != b.Int63() {
			same = false
		}
	}
	if same {
		t.Fatal("different turns produced identical streams")
	}
}

func TestRollPercentBounds(t *testing.T) {
	rng := NewTurnRand(99, 1)
	for i := 0; i < 100; i++ {
		if rollPercent(rng, 0) {
			t.Fatal("0% chance succeeded")
		}
		if !rollPercent(rng, 100) {
			t.Fatal("100% chance failed")
		}
	}
}
