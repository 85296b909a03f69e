package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/draftboard/go/internal/models"
)

func list(idList ...string) []models.DraftPlayer {
	out := make([]models.DraftPlayer, 0, len(idList))
	for i, id := range idList {
		out = append(out, models.DraftPlayer{Player: models.Player{PlayerID: id}, Rank: 100 + i})
	}
	return out
}

func TestMove(t *testing.T) {
	tests := map[string]struct {
		index int
		dir   Direction
		want  []string
	}{
		"up":           {index: 2, dir: Up, want: []string{"a", "c", "b", "d"}},
		"down":         {index: 0, dir: Down, want: []string{"b", "a", "c", "d"}},
		"top stays":    {index: 0, dir: Up, want: []string{"a", "b", "c", "d"}},
		"bottom stays": {index: 3, dir: Down, want: []string{"a", "b", "c", "d"}},
		"out of range": {index: 9, dir: Up, want: []string{"a", "b", "c", "d"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			in := list("a", "b", "c", "d")
			got := Move(in, tc.index, tc.dir)
			assert.Equal(t, tc.want, ids(got))
			for i, p := range got {
				assert.Equal(t, i+1, p.Rank)
			}
			assert.Equal(t, "a", in[0].PlayerID, "input is not mutated")
		})
	}
}

func TestMoveTo(t *testing.T) {
	got, ok := MoveTo(list("a", "b", "c", "d"), 3, 1)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "d", "b", "c"}, ids(got))

	got, ok = MoveTo(list("a", "b", "c", "d"), 0, 3)
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids(got))
	assert.Equal(t, 4, got[3].Rank)

	_, ok = MoveTo(list("a", "b"), 1, 1)
	assert.False(t, ok)
	_, ok = MoveTo(list("a", "b"), 0, 5)
	assert.False(t, ok)
}

func TestToSavedAndIndexOf(t *testing.T) {
	l := list("x", "y", "z")
	assert.Equal(t, map[string]int{"x": 1, "y": 2, "z": 3}, ToSaved(l))
	assert.Equal(t, 1, IndexOf(l, "y"))
	assert.Equal(t, -1, IndexOf(l, "nope"))
}
