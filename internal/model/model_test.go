package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNotStarted, true},
		{StatusInProgress, true},
		{StatusComplete, true},
		{Status(""), false},
		{Status("finished"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestFlag_JSON(t *testing.T) {
	p := ScoredPlayer{
		RawPlayer:    RawPlayer{Name: "Anna", RawScore: 0},
		DenseRank:    1,
		LeaguePoints: 10,
		TopScorer:    true,
		ZeroRaw:      true,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, want := range []string{`"top_scorer":1`, `"zero_raw":1`, `"zero_league_points":0`, `"name":"Anna"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() = %s, should contain %s", data, want)
		}
	}
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Flag
		wantErr bool
	}{
		{"1", true, false},
		{"0", false, false},
		{"true", true, false},
		{"false", false, false},
		{"2", false, true},
		{`"1"`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f Flag
			err := json.Unmarshal([]byte(tt.input), &f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && f != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, f, tt.want)
			}
		})
	}
}

func TestRound_KickoffNull(t *testing.T) {
	r := Round{
		Season:  "2025-26",
		Number:  3,
		Status:  StatusNotStarted,
		Matches: []Match{{RowIndex: 1, Home: "Bayern", Away: "Bremen"}},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if !strings.Contains(string(data), `"datetime_local":null`) {
		t.Errorf("Marshal() = %s, want datetime_local null", data)
	}
	if !strings.Contains(string(data), `"round":3`) {
		t.Errorf("Marshal() = %s, want round 3", data)
	}
}

func TestRound_CompletedMatches(t *testing.T) {
	r := &Round{Matches: []Match{
		{Result: "2:1"},
		{Result: ""},
		{Result: "0:0"},
	}}

	if got := r.CompletedMatches(); got != 2 {
		t.Errorf("CompletedMatches() = %d, want 2", got)
	}
}

func TestRound_AllRawScoresZero(t *testing.T) {
	tests := []struct {
		name    string
		players []ScoredPlayer
		want    bool
	}{
		{"no players", nil, false},
		{"all zero", []ScoredPlayer{{RawPlayer: RawPlayer{Name: "a"}}, {RawPlayer: RawPlayer{Name: "b"}}}, true},
		{"one scored", []ScoredPlayer{{RawPlayer: RawPlayer{Name: "a"}}, {RawPlayer: RawPlayer{Name: "b", RawScore: 3}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Round{Players: tt.players}
			if got := r.AllRawScoresZero(); got != tt.want {
				t.Errorf("AllRawScoresZero() = %v, want %v", got, tt.want)
			}
		})
	}
}
