package foliotrack

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-1-5", NewDate(2025, time.January, 5), false},
		{"2024-02-29", NewDate(2024, time.February, 29), false},
		{"not a date", Date{}, true},
		{"2025-13-01", Date{}, true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDateNormalization(t *testing.T) {
	// Out-of-range components roll over like time.Date.
	if got := NewDate(2025, time.January, 32); got != NewDate(2025, time.February, 1) {
		t.Errorf("NewDate(2025, 1, 32) = %s, want 2025-02-01", got)
	}
	if got := NewDate(2025, time.January, 31).Add(1); got != NewDate(2025, time.February, 1) {
		t.Errorf("Add(1) = %s, want 2025-02-01", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2025, time.January, 15)
	b := NewDate(2025, time.January, 16)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Errorf("ordering broken for %s and %s", a, b)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("%s compares against itself", a)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.January, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2025-01-05"` {
		t.Errorf("Marshal = %s, want \"2025-01-05\"", data)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("round trip = %s, want %s", got, d)
	}
}
