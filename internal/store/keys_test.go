package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveContentKey(t *testing.T) {
	tests := []struct {
		name       string
		board      string
		classLevel string
		stream     string
		subject    string
		chapterID  string
		expected   string
	}{
		{
			name:       "Junior level omits stream",
			board:      "CBSE",
			classLevel: "9",
			stream:     "Science",
			subject:    "math",
			chapterID:  "ch1",
			expected:   "content_data_v3_CBSE_9_math_ch1",
		},
		{
			name:       "Class 11 with stream",
			board:      "CBSE",
			classLevel: "11",
			stream:     "Science",
			subject:    "physics",
			chapterID:  "ch3",
			expected:   "content_data_v3_CBSE_11-Science_physics_ch3",
		},
		{
			name:       "Class 12 with stream",
			board:      "ICSE",
			classLevel: "12",
			stream:     "Commerce",
			subject:    "accounts",
			chapterID:  "ch7",
			expected:   "content_data_v3_ICSE_12-Commerce_accounts_ch7",
		},
		{
			name:       "Class 11 without stream omits suffix",
			board:      "CBSE",
			classLevel: "11",
			stream:     "",
			subject:    "physics",
			chapterID:  "ch3",
			expected:   "content_data_v3_CBSE_11_physics_ch3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveContentKey(tt.board, tt.classLevel, tt.stream, tt.subject, tt.chapterID)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDeriveContentKeyDeterministic(t *testing.T) {
	a := DeriveContentKey("CBSE", "12", "Science", "chem", "ch2")
	b := DeriveContentKey("CBSE", "12", "Science", "chem", "ch2")
	assert.Equal(t, a, b)
}

func TestUserAndPresenceKeys(t *testing.T) {
	assert.Equal(t, "users_v3:42", UserKey(42))
	assert.Equal(t, "presence_v3:42", PresenceKey(42))
}
