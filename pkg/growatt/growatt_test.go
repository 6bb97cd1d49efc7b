package growatt

import (
	"testing"
	"time"
)

func TestHashPassword(t *testing.T) {
	// md5("password") = 5f4dcc3b5aa765d61d8327deb882cf99 — no even-index
	// '0', so the digest passes through unchanged.
	if got := HashPassword("password"); got != "5f4dcc3b5aa765d61d8327deb882cf99" {
		t.Errorf("HashPassword(\"password\") = %s", got)
	}

	// md5("") = d41d8cd98f00b204e9800998ecf8427e. The zeros at even
	// indices 10, 14 and 20 become 'c'; the odd-indexed zeros at 11 and 19
	// stay.
	if got := HashPassword(""); got != "d41d8cd98fc0b2c4e980c998ecf8427e" {
		t.Errorf("HashPassword(\"\") = %s, expected d41d8cd98fc0b2c4e980c998ecf8427e", got)
	}
}

func TestHashPasswordEvenIndexRule(t *testing.T) {
	got := HashPassword("anything at all")
	if len(got) != 32 {
		t.Fatalf("digest length = %d, expected 32", len(got))
	}
	for i := 0; i < len(got); i += 2 {
		if got[i] == '0' {
			t.Errorf("even index %d still holds '0', expected 'c'", i)
		}
	}
}

func TestFreshness(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		cachedAgo   time.Duration
		expiresIn   time.Duration
		storedStale bool
		wantAge     int
		wantStale   bool
	}{
		{"expired by time", 130 * time.Minute, -10 * time.Minute, false, 130, true},
		{"fresh", 5 * time.Minute, 1435 * time.Minute, false, 5, false},
		{"stored stale overrides expiry", 5 * time.Minute, 1435 * time.Minute, true, 5, true},
		{"both stale paths", 2000 * time.Minute, -560 * time.Minute, true, 2000, true},
		{"just refreshed", 0, 24 * time.Hour, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, stale := Freshness(now.Add(-tt.cachedAgo), now.Add(tt.expiresIn), tt.storedStale, now)
			if age != tt.wantAge {
				t.Errorf("age = %d, expected %d", age, tt.wantAge)
			}
			if stale != tt.wantStale {
				t.Errorf("isStale = %v, expected %v", stale, tt.wantStale)
			}
		})
	}
}

func TestParseMetric(t *testing.T) {
	if v := parseMetric(""); v != nil {
		t.Errorf("parseMetric(\"\") = %v, expected nil", v)
	}
	if v := parseMetric("not a number"); v != nil {
		t.Errorf("parseMetric garbage = %v, expected nil", v)
	}
	v := parseMetric("12.345")
	if v == nil || v.String() != "12.345" {
		t.Errorf("parseMetric(\"12.345\") = %v", v)
	}
}
