package commands

import (
	"fmt"
	"strings"

	"teamboard/internal/application/dto"
)

// resolveList finds a list on board by id, unique id prefix or name
func resolveList(board *dto.BoardDTO, ref string) (*dto.ListDTO, error) {
	ids := make([]string, len(board.Lists))
	names := make([]string, len(board.Lists))
	for i, l := range board.Lists {
		ids[i] = l.ID
		names[i] = l.Name
	}
	idx, err := match(ids, names, "list", ref)
	if err != nil {
		return nil, err
	}
	return &board.Lists[idx], nil
}

// resolveCard finds a card anywhere on board by id, unique id prefix or
// title, and returns it with its list
func resolveCard(board *dto.BoardDTO, ref string) (*dto.CardDTO, *dto.ListDTO, error) {
	type loc struct{ list, card int }
	var (
		ids    []string
		titles []string
		locs   []loc
	)
	for li, l := range board.Lists {
		for ci, c := range l.Cards {
			ids = append(ids, c.ID)
			titles = append(titles, c.Title)
			locs = append(locs, loc{li, ci})
		}
	}
	idx, err := match(ids, titles, "card", ref)
	if err != nil {
		return nil, nil, err
	}
	l := &board.Lists[locs[idx].list]
	return &l.Cards[locs[idx].card], l, nil
}

// match returns the index of the entry ref names. An exact id wins, then
// a unique id prefix (with or without the kind prefix), then a unique
// case-insensitive name.
func match(ids, names []string, kind, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%s reference is empty", kind)
	}
	for i, id := range ids {
		if id == ref {
			return i, nil
		}
	}

	prefixes := []string{ref}
	if !strings.HasPrefix(ref, kind+"-") {
		prefixes = append(prefixes, kind+"-"+ref)
	}
	found := -1
	for i, id := range ids {
		for _, p := range prefixes {
			if strings.HasPrefix(id, p) {
				if found >= 0 && found != i {
					return -1, fmt.Errorf("%s %q is ambiguous", kind, ref)
				}
				found = i
			}
		}
	}
	if found >= 0 {
		return found, nil
	}

	for i, name := range names {
		if strings.EqualFold(name, ref) {
			if found >= 0 {
				return -1, fmt.Errorf("%s %q is ambiguous, use its id", kind, ref)
			}
			found = i
		}
	}
	if found >= 0 {
		return found, nil
	}
	return -1, fmt.Errorf("%s not found: %s", kind, ref)
}

// shortID trims the uuid in a server id for display
func shortID(id string) string {
	i := strings.IndexByte(id, '-')
	if i < 0 || len(id) <= i+9 {
		return id
	}
	return id[:i+9]
}
