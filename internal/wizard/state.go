// Package wizard holds the operator's in-progress configuration as an
// explicit State value. Every operation returns a new State; nothing is
// mutated in place.
package wizard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/JonMunkholm/fieldmap/internal/mapping"
	"github.com/JonMunkholm/fieldmap/internal/run"
)

// Step is a wizard screen, numbered from 1.
type Step int

const (
	StepSetup Step = iota + 1
	StepMapping
	StepPreview
	StepRun
)

// FirstStep and LastStep bound the step range.
const (
	FirstStep = StepSetup
	LastStep  = StepRun
)

func (s Step) String() string {
	switch s {
	case StepSetup:
		return "setup"
	case StepMapping:
		return "mapping"
	case StepPreview:
		return "preview"
	case StepRun:
		return "run"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ErrInvalidStep is returned for steps outside the wizard or forward jumps
// to steps not yet visited.
var ErrInvalidStep = errors.New("invalid wizard step")

// State is one operator's wizard session.
type State struct {
	ID           uuid.UUID `json:"id"`
	CurrentStep  Step      `json:"currentStep"`
	VisitedSteps []Step    `json:"visitedSteps"` // ascending
	Data         Data      `json:"data"`
}

// New starts a session on the first step with default data.
func New() State {
	return State{
		ID:           uuid.New(),
		CurrentStep:  FirstStep,
		VisitedSteps: []Step{FirstStep},
		Data:         DefaultData(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.VisitedSteps = slices.Clone(s.VisitedSteps)
	out.Data = s.Data.clone()
	return out
}

// Visited reports whether step has been shown.
func (s State) Visited(step Step) bool {
	return slices.Contains(s.VisitedSteps, step)
}

// MarkVisited records step as visited.
func MarkVisited(s State, step Step) State {
	out := s.Clone()
	if !out.Visited(step) {
		out.VisitedSteps = append(out.VisitedSteps, step)
		slices.Sort(out.VisitedSteps)
	}
	return out
}

// Next advances one step and marks it visited. On the last step it
// returns s unchanged.
func Next(s State) State {
	if s.CurrentStep >= LastStep {
		return s.Clone()
	}
	out := MarkVisited(s, s.CurrentStep+1)
	out.CurrentStep++
	return out
}

// Back goes one step back. On the first step it returns s unchanged.
func Back(s State) State {
	out := s.Clone()
	if out.CurrentStep > FirstStep {
		out.CurrentStep--
	}
	return out
}

// GoTo jumps to step. Any visited step may be reached; of the unvisited
// steps only the one directly after the current step is allowed.
func GoTo(s State, step Step) (State, error) {
	if step < FirstStep || step > LastStep {
		return s, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	if !s.Visited(step) && step != s.CurrentStep+1 {
		return s, fmt.Errorf("%w: %s has not been reached", ErrInvalidStep, step)
	}
	out := MarkVisited(s, step)
	out.CurrentStep = step
	return out, nil
}

// WithMappings replaces the mapping list. Each mapping is validated first.
func WithMappings(s State, mappings []mapping.FieldMapping) (State, error) {
	for i, m := range mappings {
		if err := mapping.Validate(m); err != nil {
			return s, fmt.Errorf("mapping %d: %w", i, err)
		}
	}
	out := s.Clone()
	out.Data.Mappings = mapping.CloneAll(mappings)
	return out, nil
}

// WithSetup replaces the load setup.
func WithSetup(s State, setup SetupConfig) State {
	out := s.Clone()
	out.Data.Setup = setup
	return out
}

// WithRun replaces the run configuration.
func WithRun(s State, cfg run.Config) State {
	out := s.Clone()
	out.Data.Run = cfg
	return out
}

// WithInstall replaces the installation choices.
func WithInstall(s State, install InstallConfig) State {
	out := s.Clone()
	out.Data.Install = install
	return out
}
