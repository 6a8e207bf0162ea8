// Package statgen turns untrusted generative stat proposals into
// battle-legal creature definitions. The generative service is advisory
// only: whatever it returns, the validator emits a definition that
// satisfies every balance bound, falling back to a deterministic
// label-derived creature when the proposal is unusable.
package statgen

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ProposalState classifies what the generative service gave us.
type ProposalState int

const (
	// ProposalAbsent means no usable text came back at all.
	ProposalAbsent ProposalState = iota
	// ProposalMalformed means text came back but did not decode as JSON.
	ProposalMalformed
	// ProposalWellFormed means the JSON decoded; individual fields may
	// still be missing or out of bounds.
	ProposalWellFormed
)

// flexInt tolerates the numeric shapes language models actually emit:
// integers, floats, and numeric strings. Anything else leaves OK false
// without failing the surrounding decode.
type flexInt struct {
	Value int
	OK    bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if n, err := strconv.Atoi(s); err == nil {
		f.Value, f.OK = n, true
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value, f.OK = int(fl), true
	}
	return nil
}

// RawMove is one unvalidated move from a proposal.
type RawMove struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Power       flexInt `json:"power"`
	Magnitude   flexInt `json:"magnitude"`
	Chance      flexInt `json:"chance"`
	Accuracy    flexInt `json:"accuracy"`
	Stat        string  `json:"stat"`
	Duration    flexInt `json:"duration_turns"`
	Description string  `json:"description"`
}

// RawProposal is the decoded but unvalidated proposal body.
type RawProposal struct {
	Name      string    `json:"name"`
	Nature    string    `json:"nature"`
	HitPoints flexInt   `json:"hp"`
	Attack    flexInt   `json:"attack"`
	Defense   flexInt   `json:"defense"`
	Speed     flexInt   `json:"speed"`
	Moves     []RawMove `json:"moves"`
}

// Proposal is the parsed result handed to the validator.
type Proposal struct {
	State ProposalState
	Raw   RawProposal
}

// stripFences removes a markdown code fence that models often wrap JSON
// answers in, with or without a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseProposal classifies and decodes raw generative output.
func ParseProposal(text string) Proposal {
	body := stripFences(text)
	if body == "" {
		return Proposal{State: ProposalAbsent}
	}
	var raw RawProposal
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return Proposal{State: ProposalMalformed}
	}
	return Proposal{State: ProposalWellFormed, Raw: raw}
}
