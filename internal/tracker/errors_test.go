package tracker

import (
	"errors"
	"strings"
	"testing"
)

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("  Deep ")
	if err != nil {
		t.Fatal(err)
	}
	if p != PriorityDeep {
		t.Fatalf("expected deep, got %s", p)
	}

	_, err = ParsePriority("urgent")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "priority" || verr.Value != "urgent" {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
	if !strings.Contains(verr.Error(), "choose from") {
		t.Fatalf("error should list options, got %q", verr.Error())
	}
}

func TestParseEnergyLevel(t *testing.T) {
	l, err := ParseEnergyLevel("HIGH")
	if err != nil {
		t.Fatal(err)
	}
	if l != EnergyHigh {
		t.Fatalf("expected high, got %s", l)
	}

	if _, err := ParseEnergyLevel("turbo"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestParseSessionType(t *testing.T) {
	st, err := ParseSessionType("briefing")
	if err != nil {
		t.Fatal(err)
	}
	if st != SessionBriefing {
		t.Fatalf("expected briefing, got %s", st)
	}

	if _, err := ParseSessionType("meeting"); err == nil {
		t.Fatal("expected error for unknown session type")
	}
}
