package objective

import "strings"

// Pace is a learner's preferred speed through the material.
type Pace string

const (
	PaceSlow     Pace = "slow"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast"
)

// LearningStyle is a learner's preferred modality.
type LearningStyle string

const (
	StyleVisual       LearningStyle = "visual"
	StyleAuditory     LearningStyle = "auditory"
	StyleKinesthetic  LearningStyle = "kinesthetic"
	StyleReadingWrite LearningStyle = "reading-writing"
)

// Keywords returns the description keywords correlated with the style.
func (s LearningStyle) Keywords() []string {
	switch s {
	case StyleVisual:
		return []string{"diagram", "chart", "visualize", "visualise", "graph", "map"}
	case StyleAuditory:
		return []string{"discuss", "listen", "lecture", "podcast", "explain aloud"}
	case StyleKinesthetic:
		return []string{"build", "lab", "simulate", "hands-on", "practice"}
	case StyleReadingWrite:
		return []string{"read", "write", "essay", "notes", "summarize"}
	default:
		return nil
	}
}

// Profile describes the learner a path is personalized for. The engine never
// mutates it.
type Profile struct {
	ID               string        `json:"id" yaml:"id" validate:"required"`
	Pace             Pace          `json:"pace,omitempty" yaml:"pace,omitempty" validate:"omitempty,oneof=slow moderate fast"`
	Style            LearningStyle `json:"style,omitempty" yaml:"style,omitempty" validate:"omitempty,oneof=visual auditory kinesthetic reading-writing"`
	Goals            []string      `json:"goals,omitempty" yaml:"goals,omitempty"`
	PriorKnowledge   []string      `json:"prior_knowledge,omitempty" yaml:"prior_knowledge,omitempty"`
	TimeAvailability string        `json:"time_availability,omitempty" yaml:"time_availability,omitempty"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	clone := p
	clone.Goals = cloneStrings(p.Goals)
	clone.PriorKnowledge = cloneStrings(p.PriorKnowledge)
	return clone
}

// NormalizedGoals returns the non-empty goals lowercased, in declaration order.
func (p Profile) NormalizedGoals() []string {
	out := make([]string, 0, len(p.Goals))
	for _, goal := range p.Goals {
		goal = strings.ToLower(strings.TrimSpace(goal))
		if goal != "" {
			out = append(out, goal)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	clone := make([]string, len(values))
	copy(clone, values)
	return clone
}
