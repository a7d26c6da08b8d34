package models

import "testing"

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		literal string
		want    Quantity
		wantErr bool
	}{
		{"0", 0, false},
		{"5", 5, false},
		{"007", 7, false},
		{"9223372036854775807", 9223372036854775807, false},
		{"", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"1.5", 0, true},
		{" 5", 0, true},
		{"5 ", 0, true},
		{"five", 0, true},
		{"١٢", 0, true}, // non-ASCII digits
		{"9223372036854775808", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			got, err := ParseQuantity(tt.literal)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuantity(%q) error = %v, wantErr = %v", tt.literal, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("ParseQuantity(%q) = %d, want %d", tt.literal, got, tt.want)
			}
		})
	}
}

func TestNewCode(t *testing.T) {
	t.Run("uppercases", func(t *testing.T) {
		c, err := NewCode("ab1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.String() != "AB1" {
			t.Fatalf("expected AB1, got %q", c)
		}
	})

	t.Run("empty returns error", func(t *testing.T) {
		if _, err := NewCode(""); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("keeps surrounding whitespace", func(t *testing.T) {
		c, _ := NewCode(" x ")
		if c.String() != " X " {
			t.Fatalf("expected %q, got %q", " X ", c)
		}
	})
}

func TestNewLocation_AllowsEmpty(t *testing.T) {
	if l := NewLocation(""); l != "" {
		t.Fatalf("expected empty location, got %q", l)
	}
	if l := NewLocation("bin1"); l != "BIN1" {
		t.Fatalf("expected BIN1, got %q", l)
	}
}
