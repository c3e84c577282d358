package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/wurstliga/internal/model"
)

var stamp = time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

func testRound(t *testing.T) *model.Round {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	kickoff := time.Date(2025, 8, 22, 20, 30, 0, 0, loc)
	later := time.Date(2025, 8, 23, 15, 30, 0, 0, loc)

	return &model.Round{
		Season: "2025-26",
		Number: 1,
		Status: model.StatusInProgress,
		Matches: []model.Match{
			{RowIndex: 1, Kickoff: &kickoff, Home: "FC Bayern München", Away: "RB Leipzig", Result: "6:0"},
			{RowIndex: 2, Kickoff: &later, Home: "1. FC Köln", Away: "1. FSV Mainz 05"},
			{RowIndex: 3, Home: "Hamburger SV", Away: "FC St. Pauli"},
		},
	}
}

func TestGenerateICS(t *testing.T) {
	ics := GenerateICS(testRound(t), "https://www.kicktipp.de/wurstliga/tippuebersicht?spieltagIndex=1", stamp)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Wurstliga//wurstliga//DE",
		"X-WR-CALNAME:Wurstliga 2025-26 - Spieltag 1",
		"BEGIN:VEVENT",
		"DTSTAMP:20250820T100000Z",
		"DTSTART:20250822T183000Z", // 20:30 CEST
		"DTEND:20250822T203000Z",
		"SUMMARY:FC Bayern München - RB Leipzig (6:0)",
		"SUMMARY:1. FC Köln - 1. FSV Mainz 05\r\n",
		"DESCRIPTION:Spieltag 1\\, Saison 2025-26",
		"URL:https://www.kicktipp.de/wurstliga/tippuebersicht?spieltagIndex=1",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("ICS has %d events, want 2 (match without kickoff skipped)", got)
	}
	if strings.Contains(ics, "Hamburger SV") {
		t.Error("match without kickoff should not be in the calendar")
	}

	for _, line := range strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n") {
		if strings.Contains(line, "\n") {
			t.Errorf("line %q is not terminated with \\r\\n", line)
		}
	}
}

func TestGenerateICS_NoURL(t *testing.T) {
	ics := GenerateICS(testRound(t), "", stamp)

	if strings.Contains(ics, "URL:") {
		t.Error("ICS should not contain URL when none is given")
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := GenerateICS(&model.Round{Season: "2025-26", Number: 5}, "", stamp)

	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty round should produce no events")
	}
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Errorf("empty round should still be a valid calendar:\n%s", ics)
	}
}

func TestMatchUID(t *testing.T) {
	a := matchUID("2025-26", 1, 1)

	if a != matchUID("2025-26", 1, 1) {
		t.Error("matchUID() should be deterministic")
	}
	if len(a) != 16 {
		t.Errorf("matchUID() length = %d, want 16", len(a))
	}

	others := []string{
		matchUID("2025-26", 1, 2),
		matchUID("2025-26", 2, 1),
		matchUID("2024-25", 1, 1),
	}
	for _, o := range others {
		if o == a {
			t.Errorf("matchUID() collision: %s", o)
		}
	}
}

func TestFormatICSTime(t *testing.T) {
	testTime := time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)
	formatted := formatICSTime(testTime)

	expected := "20260315T143045Z"
	if formatted != expected {
		t.Errorf("formatICSTime() = %q, want %q", formatted, expected)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"with, comma", "with\\, comma"},
		{"with; semicolon", "with\\; semicolon"},
		{"with\\backslash", "with\\\\backslash"},
		{"with\nnewline", "with\\nnewline"},
		{"Borussia M'gladbach", "Borussia M'gladbach"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeICS(tt.input)
			if got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
