package selection

import (
	"encoding/json"
	"fmt"
)

type EventKind int

const (
	EventActivated EventKind = iota + 1
	EventDisplaying
	EventDeactivated
)

func (kind EventKind) String() string {
	switch kind {
	case EventActivated:
		return "activated"
	case EventDisplaying:
		return "displaying"
	case EventDeactivated:
		return "deactivated"
	default:
		return fmt.Sprintf("event(%d)", int(kind))
	}
}

func (kind EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(kind.String())
}

// Event is a single host interaction with a calendar day.
type Event struct {
	Kind EventKind
	Date Date
}

func Activated(date Date) Event   { return Event{Kind: EventActivated, Date: date} }
func Displaying(date Date) Event  { return Event{Kind: EventDisplaying, Date: date} }
func Deactivated(date Date) Event { return Event{Kind: EventDeactivated, Date: date} }

// Instruction tells the host what to change after an event. Deselect is
// applied before Select.
type Instruction struct {
	Event     EventKind  `json:"event"`
	Date      Date       `json:"date"`
	ClearAll  bool       `json:"clear_all"`
	Deselect  []Date     `json:"deselect"`
	Select    []Date     `json:"select"`
	Committed *Range     `json:"committed,omitempty"`
	ToggleOff *Date      `json:"toggle_off,omitempty"`
	State     State      `json:"state"`
	Position  Position   `json:"position"`
	Corners   CornerMask `json:"corners"`
}

// Controller owns one gesture state and the set of days the host shows
// as selected. It is not safe for concurrent use.
type Controller struct {
	state    State
	selected Set
}

func NewController() *Controller {
	return &Controller{selected: NewSet()}
}

// Restore rebuilds a controller from a persisted snapshot.
func Restore(state State, selected Set) *Controller {
	controller := &Controller{state: state.clone(), selected: NewSet()}
	if selected != nil {
		controller.selected = selected.Clone()
	}
	return controller
}

func (controller *Controller) Snapshot() State {
	return controller.state.clone()
}

func (controller *Controller) Selected() Set {
	return controller.selected.Clone()
}

func (controller *Controller) Handle(event Event) Instruction {
	switch event.Kind {
	case EventActivated:
		return controller.activate(event.Date)
	case EventDeactivated:
		return controller.deactivate(event.Date)
	default:
		return controller.display(event.Date)
	}
}

// Position classifies date against the block of selected days around it.
func (controller *Controller) Position(date Date) Position {
	return ClassifyPosition(date, BlockAt(controller.selected, date))
}

func (controller *Controller) activate(date Date) Instruction {
	instruction := Instruction{Event: EventActivated, Date: date}

	startsGesture := controller.state.Start == nil
	next, committed := SelectDate(date, controller.state)
	controller.state = next

	if startsGesture {
		instruction.ClearAll = true
		instruction.Deselect = controller.selected.Sorted()
		controller.selected = NewSet(date)
		instruction.Select = []Date{date}
	} else if committed != nil {
		days := committed.Days()
		controller.selected.Add(days...)
		instruction.Select = days
		instruction.Committed = committed
	}

	return controller.finish(instruction)
}

func (controller *Controller) deactivate(date Date) Instruction {
	instruction := Instruction{Event: EventDeactivated, Date: date}

	instruction.Deselect = []Date{date}
	if pending := controller.state.Start; pending != nil && *pending != date {
		instruction.Deselect = append(instruction.Deselect, *pending)
	}

	next, toggled := Deselect(date, controller.state)
	controller.state = next
	controller.selected.Remove(instruction.Deselect...)
	instruction.ToggleOff = toggled

	return controller.finish(instruction)
}

func (controller *Controller) display(date Date) Instruction {
	return controller.finish(Instruction{Event: EventDisplaying, Date: date})
}

func (controller *Controller) finish(instruction Instruction) Instruction {
	if instruction.Deselect == nil {
		instruction.Deselect = []Date{}
	}
	if instruction.Select == nil {
		instruction.Select = []Date{}
	}
	instruction.State = controller.state.clone()
	instruction.Position = controller.Position(instruction.Date)
	instruction.Corners = Corners(instruction.Position)
	return instruction
}
