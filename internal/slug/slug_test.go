package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name    string
		service string
		city    string
		want    string
	}{
		{"basic", "Gutter Repair", "Tulsa", "gutter-repair-tulsa"},
		{"punctuation stripped", "Heating & Cooling", "St. Louis", "heating-cooling-st-louis"},
		{"whitespace collapsed", "Roof   Repair", "  Little  Rock ", "roof-repair-little-rock"},
		{"already clean", "plumbing", "austin", "plumbing-austin"},
		{"empty service", "", "Tulsa", "tulsa"},
		{"empty city", "Roof Repair", "", "roof-repair"},
		{"both empty", "", "", ""},
		{"unicode stripped", "Café Cleaning", "São Paulo", "caf-cleaning-so-paulo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.service, tt.city))
		})
	}
}

func TestMakeDeterministic(t *testing.T) {
	pairs := [][2]string{
		{"Gutter Repair", "Tulsa"},
		{"AC Repair", "Phoenix"},
		{"Drain Cleaning!!!", "Des Moines"},
	}

	for _, p := range pairs {
		first := Make(p[0], p[1])
		second := Make(p[0], p[1])
		assert.Equal(t, first, second)
	}
}

func TestMakeShape(t *testing.T) {
	inputs := [][2]string{
		{"Gutter Repair", "Tulsa"},
		{"  Weird --- Input!! ", "Over@There"},
		{"A Very Long Service Name That Keeps Going And Going", "A City With An Extremely Long Name Too"},
	}

	for _, in := range inputs {
		s := Make(in[0], in[1])
		assert.True(t, IsValid(s), "slug %q has invalid shape", s)
		assert.False(t, strings.HasPrefix(s, "-"))
		assert.False(t, strings.HasSuffix(s, "-"))
		assert.LessOrEqual(t, len(s), MaxLength)
	}
}

func TestMakeTruncation(t *testing.T) {
	s := Make("Comprehensive Residential And Commercial Property Maintenance", "Albuquerque")
	assert.LessOrEqual(t, len(s), MaxLength)
	assert.False(t, strings.HasSuffix(s, "-"))
}

func TestFromParts(t *testing.T) {
	assert.Equal(t, "tulsa-ok", FromParts("Tulsa", "OK"))
	assert.Equal(t, "residential-roofing-tulsa", FromParts("Residential", "Roofing", "Tulsa"))
	assert.Equal(t, "solo", FromParts("", "Solo", ""))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("gutter-repair-tulsa"))
	assert.False(t, IsValid("Gutter-Repair"))
	assert.False(t, IsValid("has space"))
	assert.False(t, IsValid(""))
}
