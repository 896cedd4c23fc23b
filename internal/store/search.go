package store

import (
	"iter"

	"github.com/Kai-Rice/study-log/internal/models"
)

// Predicate decides whether a row is part of a search result.
type Predicate func(models.Row) bool

// Search returns the rows satisfying pred in file order. The sequence is
// lazy and restartable: ranging over it again re-walks the group's rows, so
// repeated calls with no intervening Log yield the same rows. A nil
// predicate matches everything. Search never mutates the group.
func (g *Group) Search(pred Predicate) iter.Seq[models.Row] {
	return func(yield func(models.Row) bool) {
		for _, row := range g.Rows {
			if pred != nil && !pred(row) {
				continue
			}
			if !yield(row) {
				return
			}
		}
	}
}
