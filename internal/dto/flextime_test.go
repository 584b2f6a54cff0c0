package dto

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestFlexTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		valid bool
	}{
		{
			name:  "rfc3339 string",
			input: `"2025-01-10T08:30:00Z"`,
			want:  time.Date(2025, time.January, 10, 8, 30, 0, 0, time.UTC),
			valid: true,
		},
		{
			name:  "date-only string",
			input: `"2025-01-10"`,
			want:  time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			valid: true,
		},
		{
			name:  "unix seconds number",
			input: `1736497800`,
			want:  time.Unix(1736497800, 0),
			valid: true,
		},
		{
			name:  "timestamp wrapper object",
			input: `{"seconds":1736497800,"nanos":0}`,
			want:  time.Unix(1736497800, 0),
			valid: true,
		},
		{name: "null is absent", input: `null`},
		{name: "garbage string is unparsable", input: `"not-a-date"`},
		{name: "empty object is unparsable", input: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexTime
			if err := json.Unmarshal([]byte(tt.input), &ft); err != nil {
				t.Fatalf("UnmarshalJSON must be total, got error: %v", err)
			}
			if ft.Valid() != tt.valid {
				t.Fatalf("Valid() = %v, want %v", ft.Valid(), tt.valid)
			}
			if tt.valid && !ft.Or(time.Time{}).Equal(tt.want) {
				t.Errorf("decoded %v, want %v", ft.Or(time.Time{}), tt.want)
			}
		})
	}
}

func TestFlexTimeFallback(t *testing.T) {
	fallback := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	var ft FlexTime
	_ = json.Unmarshal([]byte(`"not-a-date"`), &ft)
	if !ft.Or(fallback).Equal(fallback) {
		t.Error("unparsable date must resolve to the fallback")
	}

	before := time.Now()
	got := ft.OrNow()
	if got.Before(before) || got.After(time.Now()) {
		t.Errorf("OrNow() = %v, expected a current timestamp", got)
	}
}

func TestFlexAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantNaN bool
	}{
		{name: "number", input: `42.5`, want: 42.5},
		{name: "numeric string", input: `"12.5"`, want: 12.5},
		{name: "string with spaces", input: `" 7 "`, want: 7},
		{name: "garbage string", input: `"abc"`, wantNaN: true},
		{name: "null", input: `null`, wantNaN: true},
		{name: "object", input: `{"v":1}`, wantNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fa FlexAmount
			if err := json.Unmarshal([]byte(tt.input), &fa); err != nil {
				t.Fatalf("UnmarshalJSON must be total, got error: %v", err)
			}
			if tt.wantNaN {
				if !math.IsNaN(fa.Float64()) {
					t.Errorf("decoded %v, want NaN", fa.Float64())
				}
				return
			}
			if fa.Float64() != tt.want {
				t.Errorf("decoded %v, want %v", fa.Float64(), tt.want)
			}
		})
	}
}

func TestFlexAmountMarshalNaNAsZero(t *testing.T) {
	b, err := json.Marshal(FlexAmount(math.NaN()))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "0" {
		t.Errorf("NaN marshals as %s, want 0", b)
	}
}
