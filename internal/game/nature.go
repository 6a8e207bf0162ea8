package game

import "strings"

// Nature is a creature's elemental type. It determines damage multipliers
// through the effectiveness table below.
type Nature string

const (
	NatureNormal   Nature = "normal"
	NatureFire     Nature = "fire"
	NatureWater    Nature = "water"
	NatureElectric Nature = "electric"
	NatureEarth    Nature = "earth"
	NatureAir      Nature = "air"
	NatureIce      Nature = "ice"
	NaturePoison   Nature = "poison"
	NatureMetal    Nature = "metal"
	NatureDark     Nature = "dark"
	NatureLight    Nature = "light"
)

// Natures returns the closed set of valid natures in a fixed order.
func Natures() []Nature {
	return []Nature{
		NatureNormal, NatureFire, NatureWater, NatureElectric, NatureEarth,
		NatureAir, NatureIce, NaturePoison, NatureMetal, NatureDark, NatureLight,
	}
}

// ParseNature normalizes s into a Nature. The second return value reports
// whether s named a known nature.
func ParseNature(s string) (Nature, bool) {
	n := Nature(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Natures() {
		if v == n {
			return n, true
		}
	}
	return NatureNormal, false
}

// natureChart maps attacker nature -> defender nature -> damage multiplier.
// Pairs not listed are neutral (1.0). The table is immutable process-wide
// state; Multiplier is a total function over the nature set.
var natureChart = map[Nature]map[Nature]float64{
	NatureFire:     {NatureIce: 2.0, NatureAir: 1.5, NatureMetal: 1.5, NatureWater: 0.5, NatureEarth: 0.5},
	NatureWater:    {NatureFire: 2.0, NatureEarth: 1.5, NatureElectric: 0.5, NatureIce: 0.5},
	NatureElectric: {NatureWater: 2.0, NatureAir: 1.5, NatureMetal: 1.5, NatureEarth: 0.5},
	NatureEarth:    {NatureElectric: 2.0, NatureFire: 1.5, NaturePoison: 1.5, NatureAir: 0.5, NatureWater: 0.5},
	NatureAir:      {NatureEarth: 2.0, NaturePoison: 1.5, NatureElectric: 0.5, NatureIce: 0.5},
	NatureIce:      {NatureAir: 2.0, NatureEarth: 1.5, NatureWater: 1.5, NatureFire: 0.5, NatureMetal: 0.5},
	NaturePoison:   {NatureWater: 1.5, NatureLight: 1.5, NatureMetal: 0.5, NatureEarth: 0.5},
	NatureMetal:    {NaturePoison: 2.0, NatureIce: 1.5, NatureFire: 0.5, NatureElectric: 0.5},
	NatureDark:     {NatureLight: 1.5, NaturePoison: 1.5, NatureDark: 0.5},
	NatureLight:    {NatureDark: 1.5, NatureMetal: 1.5, NatureLight: 0.5},
}

// Multiplier returns the damage multiplier for an attack of nature a
// against a defender of nature d. Unknown pairs are neutral.
func Multiplier(a, d Nature) float64 {
	if row, ok := natureChart[a]; ok {
		if m, ok := row[d]; ok {
			return m
		}
	}
	return 1.0
}
