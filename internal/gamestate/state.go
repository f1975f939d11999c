// Package gamestate decodes the layout the game-config service currently
// uses for GET /state. Nothing else in the client depends on that layout;
// exports always use the raw document.
package gamestate

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownLayout is returned when the document is valid JSON but not the
// {"game_mode", "params"} object this package understands.
var ErrUnknownLayout = errors.New("unrecognized state layout")

// Source values reported per parameter.
const (
	SourceAI      = "ai"
	SourceDefault = "default"
)

// Param is one tunable game parameter.
type Param struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Value       json.RawMessage `json:"value"`
	Source      string          `json:"source"`
}

// State is the decoded /state document.
type State struct {
	// GameMode is empty until a game type has been chosen.
	GameMode string  `json:"game_mode"`
	Params   []Param `json:"params"`
}

// Row is a flattened parameter for table output.
type Row struct {
	Name        string `json:"name" header:"NAME"`
	Value       string `json:"value" header:"VALUE"`
	Source      string `json:"source" header:"SOURCE"`
	Description string `json:"description" header:"DESCRIPTION"`
}

// Parse decodes raw into a State.
func Parse(raw []byte) (*State, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLayout, err)
	}
	if _, ok := probe["params"]; !ok {
		return nil, ErrUnknownLayout
	}
	if _, ok := probe["game_mode"]; !ok {
		return nil, ErrUnknownLayout
	}

	var s State
	var mode *string
	if err := json.Unmarshal(probe["game_mode"], &mode); err != nil {
		return nil, fmt.Errorf("%w: game_mode: %v", ErrUnknownLayout, err)
	}
	if mode != nil {
		s.GameMode = *mode
	}
	if err := json.Unmarshal(probe["params"], &s.Params); err != nil {
		return nil, fmt.Errorf("%w: params: %v", ErrUnknownLayout, err)
	}
	return &s, nil
}

// Chosen reports whether a game type has been selected.
func (s *State) Chosen() bool {
	return s.GameMode != ""
}

// Rows returns the parameters sorted by name.
func (s *State) Rows() []Row {
	rows := make([]Row, 0, len(s.Params))
	for _, p := range s.Params {
		rows = append(rows, Row{
			Name:        p.Name,
			Value:       formatValue(p.Value),
			Source:      p.Source,
			Description: p.Description,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// Tuned counts parameters set by the assistant rather than defaulted.
func (s *State) Tuned() int {
	n := 0
	for _, p := range s.Params {
		if p.Source == SourceAI {
			n++
		}
	}
	return n
}

func formatValue(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(v, &str); err == nil {
		return str
	}
	return strings.TrimSpace(string(v))
}
