package report

import (
	"sort"

	"github.com/tedhq/ted/pkg/models"
)

// groupBy buckets items by key, returning the keys in first-seen order.
// Every aggregation in this package goes through it so grouped output
// ordering is consistent everywhere.
func groupBy[T any, K comparable](items []T, key func(T) K) ([]K, map[K][]T) {
	groups := make(map[K][]T)
	var keys []K
	for _, item := range items {
		k := key(item)
		if _, exists := groups[k]; !exists {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], item)
	}
	return keys, groups
}

// sumHours adds up the effective duration of a set of records.
func sumHours(records []models.TaskRecord) float64 {
	total := 0.0
	for i := range records {
		total += records[i].Hours()
	}
	return total
}

// DayGroup is one calendar day's worth of task records, kept in
// repository order.
type DayGroup struct {
	Date  models.Date
	Tasks []models.TaskRecord
}

// TotalHours is the summed duration of the day's tasks.
func (g DayGroup) TotalHours() float64 {
	return sumHours(g.Tasks)
}

// GroupByDay splits records into per-date groups, ascending by date.
func GroupByDay(records []models.TaskRecord) []DayGroup {
	keys, groups := groupBy(records, func(t models.TaskRecord) string { return t.Date.Key() })
	sort.Strings(keys)

	days := make([]DayGroup, 0, len(keys))
	for _, k := range keys {
		tasks := groups[k]
		days = append(days, DayGroup{Date: tasks[0].Date, Tasks: tasks})
	}
	return days
}
