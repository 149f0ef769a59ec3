package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleBoundaries(t *testing.T) {
	cases := []struct {
		name string
		s    string
		want bool
	}{
		{"empty", "", false},
		{"one char", "a", true},
		{"sixteen chars", strings.Repeat("a", 16), true},
		{"seventeen chars", strings.Repeat("a", 17), false},
		{"mixed alnum", "Alice42", true},
		{"space rejected", "al ice", false},
		{"punctuation rejected", "al_ice", false},
		{"unicode rejected", "aliceé", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Handle(c.s))
		})
	}
}

func TestRoomNameBoundaries(t *testing.T) {
	cases := []struct {
		name string
		s    string
		want bool
	}{
		{"empty", "", false},
		{"one char", "a", true},
		{"thirty two chars", strings.Repeat("r", 32), true},
		{"thirty three chars", strings.Repeat("r", 33), false},
		{"mixed alnum", "Room42", true},
		{"hyphen rejected", "room-1", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, RoomName(c.s))
		})
	}
}
