package selection

import (
	"encoding/json"
	"sort"
)

type Position int

const (
	PositionNone Position = iota
	PositionSingle
	PositionRangeStart
	PositionRangeMiddle
	PositionRangeEnd
)

var positionNames = map[Position]string{
	PositionNone:        "none",
	PositionSingle:      "single",
	PositionRangeStart:  "range_start",
	PositionRangeMiddle: "range_middle",
	PositionRangeEnd:    "range_end",
}

func (position Position) String() string {
	if name, ok := positionNames[position]; ok {
		return name
	}
	return "none"
}

func (position Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(position.String())
}

// CornerMask is the set of rounded corners of a selection highlight.
type CornerMask uint8

const (
	CornerTopLeft CornerMask = 1 << iota
	CornerBottomLeft
	CornerTopRight
	CornerBottomRight

	CornersNone  CornerMask = 0
	CornersLeft             = CornerTopLeft | CornerBottomLeft
	CornersRight            = CornerTopRight | CornerBottomRight
	CornersAll              = CornersLeft | CornersRight
)

const CornerRadius = 20

func (mask CornerMask) Has(corner CornerMask) bool {
	return mask&corner == corner
}

// Names lists rounded corners in a stable order for transport.
func (mask CornerMask) Names() []string {
	names := make([]string, 0, 4)
	if mask.Has(CornerTopLeft) {
		names = append(names, "top_left")
	}
	if mask.Has(CornerBottomLeft) {
		names = append(names, "bottom_left")
	}
	if mask.Has(CornerTopRight) {
		names = append(names, "top_right")
	}
	if mask.Has(CornerBottomRight) {
		names = append(names, "bottom_right")
	}
	return names
}

func (mask CornerMask) MarshalJSON() ([]byte, error) {
	return json.Marshal(mask.Names())
}

// Corners maps a position to its rounded corners: caps round the side
// facing away from the block, middles stay square, singles round all four.
func Corners(position Position) CornerMask {
	switch position {
	case PositionRangeStart:
		return CornersLeft
	case PositionRangeEnd:
		return CornersRight
	case PositionSingle:
		return CornersAll
	default:
		return CornersNone
	}
}

// Set holds the days currently marked as selected by the host.
type Set map[Date]struct{}

func NewSet(days ...Date) Set {
	set := make(Set, len(days))
	for _, day := range days {
		set[day] = struct{}{}
	}
	return set
}

func (set Set) Add(days ...Date) {
	for _, day := range days {
		set[day] = struct{}{}
	}
}

func (set Set) Remove(days ...Date) {
	for _, day := range days {
		delete(set, day)
	}
}

func (set Set) Has(day Date) bool {
	_, ok := set[day]
	return ok
}

func (set Set) Clone() Set {
	cloned := make(Set, len(set))
	for day := range set {
		cloned[day] = struct{}{}
	}
	return cloned
}

// Sorted returns the selected days in ascending order.
func (set Set) Sorted() []Date {
	days := make([]Date, 0, len(set))
	for day := range set {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// BlockAt returns the maximal run of consecutive selected days that
// contains date, or nil when date is not selected.
func BlockAt(set Set, date Date) []Date {
	if !set.Has(date) {
		return nil
	}

	first := date
	for set.Has(first.AddDays(-1)) {
		first = first.AddDays(-1)
	}
	last := date
	for set.Has(last.AddDays(1)) {
		last = last.AddDays(1)
	}
	return Range{Start: first, End: last}.Days()
}

// ClassifyPosition places date within block, the contiguous selected run
// that contains it.
func ClassifyPosition(date Date, block []Date) Position {
	if len(block) == 0 {
		return PositionNone
	}

	found := false
	minDay, maxDay := block[0], block[0]
	for _, day := range block {
		if day == date {
			found = true
		}
		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
	}

	switch {
	case !found:
		return PositionNone
	case len(block) == 1:
		return PositionSingle
	case date == minDay:
		return PositionRangeStart
	case date == maxDay:
		return PositionRangeEnd
	default:
		return PositionRangeMiddle
	}
}
