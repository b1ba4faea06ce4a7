package objective

import (
	"fmt"
	"strconv"
	"strings"
)

// BloomLevel is one of the six ordered cognitive-skill categories.
type BloomLevel int

const (
	BloomRemember BloomLevel = iota + 1
	BloomUnderstand
	BloomApply
	BloomAnalyze
	BloomEvaluate
	BloomCreate
)

// BloomLevels lists every level in taxonomy order.
var BloomLevels = []BloomLevel{
	BloomRemember,
	BloomUnderstand,
	BloomApply,
	BloomAnalyze,
	BloomEvaluate,
	BloomCreate,
}

// String returns the lowercase taxonomy name.
func (b BloomLevel) String() string {
	switch b {
	case BloomRemember:
		return "remember"
	case BloomUnderstand:
		return "understand"
	case BloomApply:
		return "apply"
	case BloomAnalyze:
		return "analyze"
	case BloomEvaluate:
		return "evaluate"
	case BloomCreate:
		return "create"
	default:
		return fmt.Sprintf("bloom(%d)", int(b))
	}
}

// Valid reports whether b is one of the six taxonomy levels.
func (b BloomLevel) Valid() bool {
	return b >= BloomRemember && b <= BloomCreate
}

// LoadFactor is the per-level contribution to cognitive load, rising from 0.1
// for remember to 0.6 for create.
func (b BloomLevel) LoadFactor() float64 {
	switch b {
	case BloomRemember:
		return 0.1
	case BloomUnderstand:
		return 0.2
	case BloomApply:
		return 0.3
	case BloomAnalyze:
		return 0.4
	case BloomEvaluate:
		return 0.5
	case BloomCreate:
		return 0.6
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b BloomLevel) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("objective: invalid bloom level %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText accepts a level name ("apply") or its ordinal ("3").
func (b *BloomLevel) UnmarshalText(text []byte) error {
	level, err := ParseBloomLevel(string(text))
	if err != nil {
		return err
	}
	*b = level
	return nil
}

// ParseBloomLevel resolves a level name or ordinal.
func ParseBloomLevel(raw string) (BloomLevel, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, level := range BloomLevels {
		if value == level.String() {
			return level, nil
		}
	}
	if n, err := strconv.Atoi(value); err == nil && BloomLevel(n).Valid() {
		return BloomLevel(n), nil
	}
	return 0, fmt.Errorf("objective: unknown bloom level %q", raw)
}

// Difficulty is the five-level ordinal difficulty tier.
type Difficulty int

const (
	DifficultyBeginner Difficulty = iota + 1
	DifficultyElementary
	DifficultyIntermediate
	DifficultyAdvanced
	DifficultyExpert
)

// Difficulties lists every tier in ascending order.
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyElementary,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// MaxDifficulty is the highest tier.
const MaxDifficulty = DifficultyExpert

func (d Difficulty) String() string {
	switch d {
	case DifficultyBeginner:
		return "beginner"
	case DifficultyElementary:
		return "elementary"
	case DifficultyIntermediate:
		return "intermediate"
	case DifficultyAdvanced:
		return "advanced"
	case DifficultyExpert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Valid reports whether d is one of the five tiers.
func (d Difficulty) Valid() bool {
	return d >= DifficultyBeginner && d <= DifficultyExpert
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("objective: invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts a tier name ("advanced") or its ordinal ("4").
func (d *Difficulty) UnmarshalText(text []byte) error {
	tier, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = tier
	return nil
}

// ParseDifficulty resolves a tier name or ordinal.
func ParseDifficulty(raw string) (Difficulty, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, tier := range Difficulties {
		if value == tier.String() {
			return tier, nil
		}
	}
	if n, err := strconv.Atoi(value); err == nil && Difficulty(n).Valid() {
		return Difficulty(n), nil
	}
	return 0, fmt.Errorf("objective: unknown difficulty %q", raw)
}

// Objective is a single learning objective. Values are treated as immutable
// once handed to the engine; use Clone before changing a copy.
type Objective struct {
	ID            string     `json:"id" yaml:"id" validate:"required"`
	Description   string     `json:"description" yaml:"description"`
	Domain        string     `json:"domain,omitempty" yaml:"domain,omitempty"`
	Bloom         BloomLevel `json:"bloom" yaml:"bloom" validate:"min=1,max=6"`
	Prerequisites []string   `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Duration      int        `json:"duration_minutes" yaml:"duration_minutes" validate:"gte=0"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty" validate:"min=1,max=5"`
	Synthetic     bool       `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// Clone returns a deep copy of the objective.
func (o Objective) Clone() Objective {
	clone := o
	if len(o.Prerequisites) > 0 {
		clone.Prerequisites = make([]string, len(o.Prerequisites))
		copy(clone.Prerequisites, o.Prerequisites)
	}
	return clone
}

// Text is the lowercase searchable text of an objective used by keyword
// heuristics.
func (o Objective) Text() string {
	return strings.ToLower(o.Description + " " + o.Domain)
}
