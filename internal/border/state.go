package border

// StateKind tells whether a tracked section is currently open.
type StateKind int

const (
	NoOpenSection StateKind = iota
	OpenSection
)

// String returns the string representation of the StateKind
func (k StateKind) String() string {
	if k == OpenSection {
		return "open"
	}
	return "none"
}

// State is the single "current open section" slot. Nested names the light
// subsection open inside a heavy section, if any.
type State struct {
	Kind   StateKind
	Name   string
	Style  Style
	Nested string
}

// EventKind enumerates the inputs of the section state machine.
type EventKind int

const (
	OpenerMatched EventKind = iota
	CloserMatched
	EndOfFile
)

// Event is one recognized marker, or the end of the file.
type Event struct {
	Kind  EventKind
	Name  string
	Style Style
}

// Action tells the engine what to emit for an event.
type Action struct {
	// Close is set when the previously open section must be closed before
	// the current marker is written.
	Close      bool
	CloseStyle Style
	// Emit is the style the marker line itself is rendered in.
	Emit Style
	// CloseNested is set when the open nested subsection must get a light
	// closer first.
	CloseNested bool
	// Nested marks light markers inside a heavy section. They only change
	// the nested slot.
	Nested bool
}

// Machine tracks sections across a line scan. Sections are sequential:
// opening a section while another is open closes the first one. Light
// markers inside a heavy section are nested subsections; at most one is
// tracked and it is closed before its parent.
type Machine struct {
	state State
}

// NewMachine returns a machine with no open section.
func NewMachine() *Machine {
	return &Machine{}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Step applies an event and returns the action for it.
func (m *Machine) Step(ev Event) Action {
	switch ev.Kind {
	case OpenerMatched:
		return m.open(ev)
	case CloserMatched:
		return m.close(ev)
	default:
		return m.Finish()
	}
}

// Finish handles the end of the file. A section still open is closed.
func (m *Machine) Finish() Action {
	if m.state.Kind == NoOpenSection {
		return Action{}
	}
	act := Action{Close: true, CloseStyle: m.state.Style, CloseNested: m.state.Nested != ""}
	m.state = State{}
	return act
}

func (m *Machine) open(ev Event) Action {
	switch {
	case m.state.Kind == NoOpenSection:
		m.state = State{Kind: OpenSection, Name: ev.Name, Style: ev.Style}
		return Action{Emit: ev.Style}
	case m.nested(ev):
		act := Action{Emit: ev.Style, Nested: true, CloseNested: m.state.Nested != ""}
		m.state.Nested = ev.Name
		return act
	default:
		act := Action{Close: true, CloseStyle: m.state.Style, Emit: ev.Style, CloseNested: m.state.Nested != ""}
		m.state = State{Kind: OpenSection, Name: ev.Name, Style: ev.Style}
		return act
	}
}

func (m *Machine) close(ev Event) Action {
	switch {
	case m.state.Kind == NoOpenSection:
		// stray closer, normalized in its own style
		return Action{Emit: ev.Style}
	case m.nested(ev):
		m.state.Nested = ""
		return Action{Emit: ev.Style, Nested: true}
	default:
		act := Action{Emit: m.state.Style, CloseNested: m.state.Nested != ""}
		m.state = State{}
		return act
	}
}

func (m *Machine) nested(ev Event) bool {
	return m.state.Style == StyleHeavy && ev.Style == StyleLight
}
