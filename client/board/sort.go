package board

import (
	"sort"
	"strings"

	"github.com/tasklite/backend/domain"
)

// SortKey selects the field the list view orders by.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDueDate   SortKey = "dueDate"
	SortByTitle     SortKey = "title"
	SortByPriority  SortKey = "priority"
)

// Order is the sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// Sort returns a sorted copy of tasks. The sort is stable: ties keep their
// original order. Priority orders by rank, not lexicographically.
func Sort(tasks []domain.Task, key SortKey, order Order) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)

	less := lessFunc(key)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b domain.Task) bool {
	switch key {
	case SortByCreatedAt:
		return func(a, b domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByDueDate:
		return func(a, b domain.Task) bool { return a.DueDate.Before(b.DueDate) }
	case SortByTitle:
		return func(a, b domain.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortByPriority:
		return func(a, b domain.Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	}
	return nil
}
