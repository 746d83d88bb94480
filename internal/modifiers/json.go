package modifiers

import (
	"encoding/json"
	"fmt"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/skills"
)

type wireScope struct {
	SkillID    string `json:"skillId,omitempty"`
	ActionID   string `json:"actionId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}

type wireEntry struct {
	Name  string    `json:"name"`
	Value float64   `json:"value"`
	Scope wireScope `json:"scope,omitempty"`
}

type wireScaling struct {
	TriggerLevel int `json:"triggerLevel"`
	SlopeLevels  int `json:"slopeLevels"`
	MaxLevel     int `json:"maxLevel,omitempty"`
}

type wireModifier struct {
	Entries []wireEntry  `json:"entries"`
	Scaling *wireScaling `json:"scaling,omitempty"`
}

// DecodeModifier parses the JSON shape stored in registry modifier_json
// columns (shop entries, mastery bonuses, obstacles, constellations).
func DecodeModifier(data []byte) (Modifier, error) {
	if len(data) == 0 {
		return Modifier{}, nil
	}
	var w wireModifier
	if err := json.Unmarshal(data, &w); err != nil {
		return Modifier{}, fmt.Errorf("modifiers: decode: %w", err)
	}
	mod := Modifier{Entries: make([]Entry, 0, len(w.Entries))}
	for _, e := range w.Entries {
		scope, err := decodeScope(e.Scope)
		if err != nil {
			return Modifier{}, err
		}
		mod.Entries = append(mod.Entries, Entry{Name: e.Name, Value: e.Value, Scope: scope})
	}
	if w.Scaling != nil {
		mod.Scaling = &Scaling{
			TriggerLevel: w.Scaling.TriggerLevel,
			SlopeLevels:  w.Scaling.SlopeLevels,
			MaxLevel:     w.Scaling.MaxLevel,
		}
	}
	return mod, nil
}

func decodeScope(w wireScope) (Scope, error) {
	var scope Scope
	if w.SkillID != "" {
		sk, ok := skills.ParseName(w.SkillID)
		if !ok {
			return Scope{}, fmt.Errorf("modifiers: unknown skill %q in scope", w.SkillID)
		}
		scope.SkillID = &sk
	}
	if w.ActionID != "" {
		id, err := ids.Parse(w.ActionID)
		if err != nil {
			return Scope{}, err
		}
		scope.ActionID = &id
	}
	if w.CategoryID != "" {
		id, err := ids.Parse(w.CategoryID)
		if err != nil {
			return Scope{}, err
		}
		scope.CategoryID = &id
	}
	return scope, nil
}

// EncodeModifier renders mod back to the JSON shape DecodeModifier reads.
func EncodeModifier(mod Modifier) ([]byte, error) {
	w := wireModifier{Entries: make([]wireEntry, 0, len(mod.Entries))}
	for _, e := range mod.Entries {
		we := wireEntry{Name: e.Name, Value: e.Value}
		if e.Scope.SkillID != nil {
			we.Scope.SkillID = e.Scope.SkillID.Name()
		}
		if e.Scope.ActionID != nil {
			we.Scope.ActionID = e.Scope.ActionID.String()
		}
		if e.Scope.CategoryID != nil {
			we.Scope.CategoryID = e.Scope.CategoryID.String()
		}
		w.Entries = append(w.Entries, we)
	}
	if mod.Scaling != nil {
		w.Scaling = &wireScaling{
			TriggerLevel: mod.Scaling.TriggerLevel,
			SlopeLevels:  mod.Scaling.SlopeLevels,
			MaxLevel:     mod.Scaling.MaxLevel,
		}
	}
	return json.Marshal(w)
}
