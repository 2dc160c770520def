package glubblog

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseGCTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-02-03 04:05", time.Date(2024, 2, 3, 4, 5, 0, 0, time.UTC)},
		{"2024-02-03", time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{"2024-02-03T04:05:06Z", time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		got, err := ParseGCTime(tt.in)
		if err != nil {
			t.Errorf("ParseGCTime(%q): %v", tt.in, err)
			continue
		}
		if !time.Time(got).Equal(tt.want) {
			t.Errorf("ParseGCTime(%q) = %v, want %v", tt.in, time.Time(got), tt.want)
		}
	}
	if _, err := ParseGCTime("yesterday"); err == nil {
		t.Error("expected error")
	}
}

func TestGCTimeJSON(t *testing.T) {
	var m Meta
	if err := json.Unmarshal([]byte(`{"Title":"T","Date":"2016-10-05 22:23"}`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Date.String() != "2016-10-05 22:23" {
		t.Errorf("Date = %s", m.Date)
	}
	b, err := json.Marshal(m.Date)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2016-10-05 22:23"` {
		t.Errorf("marshal = %s", b)
	}
}
