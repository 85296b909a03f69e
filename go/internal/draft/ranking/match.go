package ranking

import (
	"strings"

	"github.com/mcdev12/draftboard/go/internal/models"
)

// nicknames maps a first name to the form a ranking source may use instead.
// A nickname hit needs only the position to agree.
var nicknames = map[string]string{
	"cameron": "cam ",
	"cam":     "cameron ",
}

// Match returns the player's 1-based rank in the table, or 0 when unranked.
//
// Passes run in order and the first entry (in table order) satisfying a pass wins:
//  1. full name and position match exactly (case-insensitive);
//  2. same position, and either the entry's name carries the player's
//     nickname form, or the last names match with first names equal or
//     sharing their first three letters;
//  3. the entry's name contains both the first and last name, same position.
func (t *Table) Match(p models.Player) int {
	first := strings.ToLower(strings.TrimSpace(p.FirstName))
	last := strings.ToLower(strings.TrimSpace(p.LastName))
	if first == "" || last == "" {
		return 0
	}
	full := first + " " + last

	if i := t.find(p.Position, func(name string, _ []string) bool {
		return name == full
	}); i > 0 {
		return i
	}

	nick := nicknames[first]
	if i := t.find(p.Position, func(name string, parts []string) bool {
		if nick != "" && strings.Contains(name, nick) {
			return true
		}
		if parts[len(parts)-1] != last {
			return false
		}
		ktcFirst := parts[0]
		return ktcFirst == first ||
			strings.HasPrefix(ktcFirst, prefix3(first)) ||
			strings.HasPrefix(first, prefix3(ktcFirst))
	}); i > 0 {
		return i
	}

	return t.find(p.Position, func(name string, _ []string) bool {
		return strings.Contains(name, first) && strings.Contains(name, last)
	})
}

func (t *Table) find(pos models.Position, pred func(name string, parts []string) bool) int {
	for i, e := range t.Players {
		if e.Position != pos {
			continue
		}
		name := strings.ToLower(e.Name)
		parts := strings.Fields(name)
		if len(parts) == 0 {
			continue
		}
		if pred(name, parts) {
			return i + 1
		}
	}
	return 0
}

func prefix3(s string) string {
	r := []rune(s)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}
