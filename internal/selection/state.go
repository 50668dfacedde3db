package selection

// State tracks an in-progress two-tap gesture. The zero value is Empty.
// End is only ever set together with Start and never precedes it.
type State struct {
	Start *Date `json:"start,omitempty"`
	End   *Date `json:"end,omitempty"`
}

// Range is a closed, inclusive interval of days with Start <= End.
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func (state State) Empty() bool {
	return state.Start == nil && state.End == nil
}

// Pending reports whether a start date is recorded and the end is still missing.
func (state State) Pending() bool {
	return state.Start != nil && state.End == nil
}

func (state State) clone() State {
	next := State{}
	if state.Start != nil {
		start := *state.Start
		next.Start = &start
	}
	if state.End != nil {
		end := *state.End
		next.End = &end
	}
	return next
}

// NewRange orders the two endpoints.
func NewRange(first Date, second Date) Range {
	if second.Before(first) {
		return Range{Start: second, End: first}
	}
	return Range{Start: first, End: second}
}

func (r Range) Contains(date Date) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}

func (r Range) Len() int {
	return r.Start.DaysUntil(r.End) + 1
}

func (r Range) Days() []Date {
	days := make([]Date, 0, r.Len())
	for day := r.Start; !day.After(r.End); day = day.AddDays(1) {
		days = append(days, day)
	}
	return days
}

// SelectDate advances the gesture by one tap. The first tap records the
// start; the second commits the ordered range and resets to Empty.
func SelectDate(clicked Date, current State) (State, *Range) {
	if current.Start == nil {
		start := clicked
		return State{Start: &start}, nil
	}

	start := *current.Start
	var end Date
	if current.End != nil {
		end = *current.End
	} else if clicked.Before(start) {
		start, end = clicked, start
	} else {
		end = clicked
	}

	committed := Range{Start: start, End: end}
	return State{}, &committed
}

// Deselect handles a toggle-off of clicked. With no gesture in progress
// the returned date is the single day the host should clear; a pending
// gesture is cancelled instead and no toggle-off is reported.
func Deselect(clicked Date, current State) (State, *Date) {
	if current.Empty() {
		toggled := clicked
		return State{}, &toggled
	}
	return State{}, nil
}
