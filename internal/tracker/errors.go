package tracker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound means a referenced task or session id does not exist. It is a
// non-fatal failure: callers turn it into a failure result, never a crash.
var ErrNotFound = errors.New("not found")

// ErrAlreadyCompleted means an attempt to complete a task twice.
var ErrAlreadyCompleted = errors.New("task already completed")

// ValidationError reports an invalid enum value supplied by a caller,
// together with the accepted options.
type ValidationError struct {
	Field   string
	Value   string
	Options []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q (choose from: %s)", e.Field, e.Value, strings.Join(e.Options, ", "))
}

// ParsePriority validates a priority string at the boundary.
func ParsePriority(s string) (TaskPriority, error) {
	p := TaskPriority(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Priorities {
		if p == valid {
			return p, nil
		}
	}
	return "", &ValidationError{Field: "priority", Value: s, Options: priorityOptions()}
}

// ParseEnergyLevel validates an energy level string at the boundary.
func ParseEnergyLevel(s string) (EnergyLevel, error) {
	l := EnergyLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range EnergyLevels {
		if l == valid {
			return l, nil
		}
	}
	return "", &ValidationError{Field: "energy level", Value: s, Options: energyOptions()}
}

// ParseSessionType validates a session type string at the boundary.
func ParseSessionType(s string) (SessionType, error) {
	t := SessionType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range SessionTypes {
		if t == valid {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "session type", Value: s, Options: sessionOptions()}
}

func priorityOptions() []string {
	opts := make([]string, len(Priorities))
	for i, p := range Priorities {
		opts[i] = string(p)
	}
	return opts
}

func energyOptions() []string {
	opts := make([]string, len(EnergyLevels))
	for i, l := range EnergyLevels {
		opts[i] = string(l)
	}
	return opts
}

func sessionOptions() []string {
	opts := make([]string, len(SessionTypes))
	for i, t := range SessionTypes {
		opts[i] = string(t)
	}
	return opts
}
