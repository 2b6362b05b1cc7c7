package core

// EventKind is the type of a discrete input event delivered by a frontend.
type EventKind int

const (
	EventQuit      EventKind = iota // Window closed, Ctrl+C
	EventKeyDown                    // A key was pressed
	EventKeyUp                      // A key was released
	EventMouseDown                  // A mouse button was pressed
	EventMouseUp                    // A mouse button was released
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "Quit"
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventMouseDown:
		return "MouseDown"
	case EventMouseUp:
		return "MouseUp"
	default:
		return "Unknown"
	}
}

// Key identifies the keys the game cares about. Everything else is KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeySpace
	KeyArrowUp
)

// Event is one input event polled from a frontend during a tick.
type Event struct {
	Kind EventKind
	Key  Key // Only meaningful for key events
}

// Quit returns a quit event.
func Quit() Event { return Event{Kind: EventQuit} }

// KeyDown returns a key press event.
func KeyDown(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// KeyUp returns a key release event.
func KeyUp(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

// MouseDown returns a mouse button press event.
func MouseDown() Event { return Event{Kind: EventMouseDown} }

// MouseUp returns a mouse button release event.
func MouseUp() Event { return Event{Kind: EventMouseUp} }

// Action represents a semantic game action, abstracted from physical events.
// This allows the controller to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space/Up key-down, mouse button release
	ActionDismiss        // Any key release, mouse button press - leaves a wait screen
	ActionQuit           // Window close, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDismiss:
		return "Dismiss"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameFromEvents folds the events polled during one tick into an InputFrame.
func FrameFromEvents(events []Event) InputFrame {
	f := NewInputFrame()
	for _, ev := range events {
		switch ev.Kind {
		case EventQuit:
			f.Set(ActionQuit)
		case EventKeyDown:
			if ev.Key == KeySpace || ev.Key == KeyArrowUp {
				f.Set(ActionJump)
			}
		case EventMouseUp:
			f.Set(ActionJump)
		case EventKeyUp, EventMouseDown:
			f.Set(ActionDismiss)
		}
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}
