package ranking

import (
	"sort"

	"github.com/mcdev12/draftboard/go/internal/models"
)

// Unranked is the rank given to players with neither a table nor a saved rank.
const Unranked = 9999

// Options controls how players are merged into the ranked list.
type Options struct {
	CustomMode   bool
	ShowVeterans bool
	Saved        map[string]int // player ID -> custom rank, 1-based
	Slots        []models.Position
}

// Merger combines the external ranking table with the user's saved ranks.
type Merger struct {
	table *Table
}

func NewMerger(table *Table) *Merger {
	if table == nil {
		table = &Table{}
	}
	return &Merger{table: table}
}

// Merge filters players to eligible (and, unless ShowVeterans, rookie) players,
// assigns each a rank and returns them sorted by Compare.
func (m *Merger) Merge(players map[string]models.Player, opts Options) []models.DraftPlayer {
	out := make([]models.DraftPlayer, 0)
	for id, p := range players {
		if p.PlayerID == "" {
			p.PlayerID = id
		}
		if !Eligible(p.Position, opts.Slots) {
			continue
		}
		rookie := p.IsRookie()
		if !opts.ShowVeterans && !rookie {
			continue
		}

		external := m.table.Match(p)
		out = append(out, models.DraftPlayer{
			Player:       p,
			Rank:         rankOf(p.PlayerID, external, opts),
			ExternalRank: external,
			IsRookie:     rookie,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return Compare(out[i], out[j], opts.CustomMode, opts.Saved) < 0
	})
	return out
}

func rankOf(playerID string, external int, opts Options) int {
	saved := opts.Saved[playerID]
	switch {
	case opts.CustomMode && saved > 0:
		return saved
	case external > 0:
		return external
	case saved > 0:
		return saved
	default:
		return Unranked
	}
}

// Compare orders two players for the ranked list. In custom mode saved ranks
// come first; then table ranks; then the derived rank; then player ID.
func Compare(a, b models.DraftPlayer, customMode bool, saved map[string]int) int {
	if customMode {
		sa, sb := saved[a.PlayerID], saved[b.PlayerID]
		switch {
		case sa > 0 && sb > 0:
			if c := cmpInt(sa, sb); c != 0 {
				return c
			}
			return cmpString(a.PlayerID, b.PlayerID)
		case sa > 0:
			return -1
		case sb > 0:
			return 1
		}
	}

	switch {
	case a.ExternalRank > 0 && b.ExternalRank > 0:
		if c := cmpInt(a.ExternalRank, b.ExternalRank); c != 0 {
			return c
		}
	case a.ExternalRank > 0:
		return -1
	case b.ExternalRank > 0:
		return 1
	}

	if c := cmpInt(a.Rank, b.Rank); c != 0 {
		return c
	}
	return cmpString(a.PlayerID, b.PlayerID)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
