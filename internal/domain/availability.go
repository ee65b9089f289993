package domain

import (
	"sort"
	"time"
)

// AvailabilityWindow a time range during which a resource can be booked.
// For one resource stored windows never overlap or touch.
type AvailabilityWindow struct {
	ID         int64
	ResourceID int64
	Range      Interval
	CreatedAt  time.Time
}

// MergePlan describes how an insert rewrites the ledger:
// every absorbed window is deleted and Merged is inserted instead.
type MergePlan struct {
	Merged   Interval
	Absorbed []AvailabilityWindow
}

// PlanInsert computes the merge of r into existing windows of one resource.
// A single pass is enough because existing windows are pairwise disjoint and non-adjacent.
func PlanInsert(existing []AvailabilityWindow, r Interval) MergePlan {
	plan := MergePlan{Merged: r}
	for _, w := range existing {
		if w.Range.AdjacentOrOverlapping(r) {
			plan.Merged = plan.Merged.Union(w.Range)
			plan.Absorbed = append(plan.Absorbed, w)
		}
	}
	return plan
}

// MergeIntervals is the pure set form of the ledger insert:
// it applies PlanInsert to existing and returns the new sorted window set.
func MergeIntervals(existing []Interval, r Interval) []Interval {
	windows := toWindows(existing)
	plan := PlanInsert(windows, r)

	absorbed := make(map[int64]struct{}, len(plan.Absorbed))
	for _, w := range plan.Absorbed {
		absorbed[w.ID] = struct{}{}
	}

	out := make([]Interval, 0, len(existing)+1)
	for _, w := range windows {
		if _, ok := absorbed[w.ID]; !ok {
			out = append(out, w.Range)
		}
	}
	out = append(out, plan.Merged)
	SortIntervals(out)
	return out
}

func toWindows(intervals []Interval) []AvailabilityWindow {
	out := make([]AvailabilityWindow, 0, len(intervals))
	for i, r := range intervals {
		out = append(out, AvailabilityWindow{ID: int64(i + 1), Range: r})
	}
	return out
}

// Remainders returns what is left of window after booked is cut out of it:
// left part [window.Start, booked.Start) and right part [booked.End, window.End), each only if non-empty.
func Remainders(window, booked Interval) []Interval {
	out := make([]Interval, 0, 2)
	if window.Start.Before(booked.Start) {
		out = append(out, Interval{Start: window.Start, End: booked.Start})
	}
	if booked.End.Before(window.End) {
		out = append(out, Interval{Start: booked.End, End: window.End})
	}
	return out
}

// CoveringWindows filters windows that fully contain r.
func CoveringWindows(windows []AvailabilityWindow, r Interval) []AvailabilityWindow {
	var out []AvailabilityWindow
	for _, w := range windows {
		if w.Range.Covers(r) {
			out = append(out, w)
		}
	}
	return out
}

// SortIntervals sorts by start time in place.
func SortIntervals(intervals []Interval) {
	sort.Slice(intervals, func(a, b int) bool {
		return intervals[a].Start.Before(intervals[b].Start)
	})
}
