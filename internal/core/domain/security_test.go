package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsISIN(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"INE002A01018", true},
		{"ine002a01018", true}, // case-insensitive
		{"US0378331005", true},
		{"INE002A0101", false},   // 11 chars
		{"INE002A010188", false}, // 13 chars
		{"1NE002A01018", false},  // digit where letters required
		{"RELIANCE", false},
		{"500325", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsISIN(tt.input), "IsISIN(%q)", tt.input)
	}
}

func TestGroupPriority(t *testing.T) {
	assert.Equal(t, 0, GroupPriority("A"))
	assert.Equal(t, 1, GroupPriority("B"))
	assert.Equal(t, 2, GroupPriority("T"))
	assert.Equal(t, 3, GroupPriority("M"))

	// Unranked segments all sort last.
	assert.Equal(t, 9, GroupPriority("X"))
	assert.Equal(t, 9, GroupPriority("Z"))
	assert.Equal(t, 9, GroupPriority(""))
}
