package server

import "testing"

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw     string
		max     int
		want    int
		wantErr bool
	}{
		{"10", 50, 10, false},
		{"50", 50, 50, false},
		{"100", 50, 50, false},
		{"1", 50, 1, false},
		{"0", 50, 0, true},
		{"-5", 50, 0, true},
		{"abc", 50, 0, true},
		{"", 50, 0, true},
	}

	for _, tt := range tests {
		got, err := parseLimit(tt.raw, tt.max)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseLimit(%q) expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLimit(%q) failed: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
