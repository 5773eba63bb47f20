package events

// StateChangeEvent is published whenever the game state machine moves.
type StateChangeEvent struct {
	From string
	To   string
}

// SessionEndEvent carries the committed result of a finished session.
type SessionEndEvent struct {
	Mode       string
	Difficulty string
	Score      int
}

type Bus struct {
	StateChanges chan StateChangeEvent
	SessionEnds  chan SessionEndEvent
}

func NewBus() *Bus {
	return &Bus{
		StateChanges: make(chan StateChangeEvent, 10),
		SessionEnds:  make(chan SessionEndEvent, 10),
	}
}
