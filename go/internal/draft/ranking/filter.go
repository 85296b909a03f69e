package ranking

import (
	"sort"
	"strings"

	"github.com/mcdev12/draftboard/go/internal/models"
)

// SortBy names a list ordering.
type SortBy string

const (
	SortByRank     SortBy = "rank"
	SortByName     SortBy = "name"
	SortByPosition SortBy = "position"

	// AllPositions disables the position filter.
	AllPositions = "ALL"
)

// Query narrows and orders the available-player list.
type Query struct {
	Search   string `json:"search"`
	Position string `json:"position"`
	SortBy   SortBy `json:"sort_by"`
}

// DefaultQuery shows everything in rank order.
func DefaultQuery() Query {
	return Query{Position: AllPositions, SortBy: SortByRank}
}

// Filter returns the players of list matching q, ordered by q.SortBy.
// list is expected in rank order already; rank sorting keeps it.
func Filter(list []models.DraftPlayer, q Query) []models.DraftPlayer {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.DraftPlayer, 0, len(list))
	for _, p := range list {
		if !matchesSearch(p.Player, search) {
			continue
		}
		if q.Position != "" && q.Position != AllPositions && string(p.Position) != q.Position {
			continue
		}
		out = append(out, p)
	}

	switch q.SortBy {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
		})
	case SortByPosition:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Position < out[j].Position
		})
	}
	return out
}

func matchesSearch(p models.Player, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.FirstName), search) ||
		strings.Contains(strings.ToLower(p.LastName), search) ||
		(p.Team != "" && strings.Contains(strings.ToLower(p.Team), search))
}

// Valid reports whether q's position and sort are recognised.
func (q Query) Valid() bool {
	switch q.SortBy {
	case "", SortByRank, SortByName, SortByPosition:
	default:
		return false
	}
	return q.Position == "" || q.Position == AllPositions || models.Position(q.Position).IsSkill()
}
