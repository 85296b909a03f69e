package ranking

import (
	"github.com/mcdev12/draftboard/go/internal/models"
)

// Direction moves a player one place in the list.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Move swaps the player at index with its neighbour and renumbers ranks.
// Moving past either end leaves the order as is.
func Move(list []models.DraftPlayer, index int, dir Direction) []models.DraftPlayer {
	out := append([]models.DraftPlayer(nil), list...)
	switch {
	case dir == Up && index > 0 && index < len(out):
		out[index-1], out[index] = out[index], out[index-1]
	case dir == Down && index >= 0 && index < len(out)-1:
		out[index], out[index+1] = out[index+1], out[index]
	}
	return renumber(out)
}

// MoveTo moves the player at from to index to and renumbers ranks.
// ok is false when either index is out of range or they are equal.
func MoveTo(list []models.DraftPlayer, from, to int) (moved []models.DraftPlayer, ok bool) {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
		return list, false
	}
	out := make([]models.DraftPlayer, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	player := list[from]
	out = append(out, models.DraftPlayer{})
	copy(out[to+1:], out[to:])
	out[to] = player
	return renumber(out), true
}

// IndexOf returns the position of playerID in list, or -1.
func IndexOf(list []models.DraftPlayer, playerID string) int {
	for i, p := range list {
		if p.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// ToSaved converts the list order into saved ranks (index + 1).
func ToSaved(list []models.DraftPlayer) map[string]int {
	saved := make(map[string]int, len(list))
	for i, p := range list {
		saved[p.PlayerID] = i + 1
	}
	return saved
}

func renumber(list []models.DraftPlayer) []models.DraftPlayer {
	for i := range list {
		list[i].Rank = i + 1
	}
	return list
}
