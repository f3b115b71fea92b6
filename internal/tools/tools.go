// Package tools wraps the tracker core in the success/message/data envelope
// consumed by the interactive front ends and the coaching-text generator.
// Invalid input and missing references become failure responses; only
// storage errors propagate as hard failures.
package tools

import (
	"time"

	"github.com/sadopc/cardfile/internal/config"
	"github.com/sadopc/cardfile/internal/tracker"
)

// Response is the sole contract between the core and its presentation
// callers. Message is pre-formatted prose; Data is the machine-readable
// payload for programmatic consumers.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func fail(message string) Response {
	return Response{Success: false, Message: message}
}

func ok(message string, data map[string]any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Toolset exposes every tracker operation in envelope form.
type Toolset struct {
	tracker *tracker.Tracker
	cfg     *config.Config
	now     func() time.Time
}

func New(t *tracker.Tracker, cfg *config.Config) *Toolset {
	return &Toolset{tracker: t, cfg: cfg, now: time.Now}
}
