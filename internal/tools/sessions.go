package tools

import (
	"fmt"

	"github.com/sadopc/cardfile/internal/tracker"
)

// StartSession begins a typed session, archiving any session left open.
func (ts *Toolset) StartSession(sessionType string, context map[string]string) (Response, error) {
	t, err := tracker.ParseSessionType(sessionType)
	if err != nil {
		return fail(err.Error()), nil
	}

	session, err := ts.tracker.Sessions.Start(t, context)
	if err != nil {
		return Response{}, err
	}

	return ok(fmt.Sprintf("Session started: %s", t), map[string]any{
		"session_id": session.ID,
		"started_at": session.StartedAt,
	}), nil
}

// EndSession archives the current session.
func (ts *Toolset) EndSession() (Response, error) {
	if err := ts.tracker.Sessions.End(); err != nil {
		return Response{}, err
	}
	return ok("Session ended.", nil), nil
}
