package entities

// Ledger is the append-only, totally ordered record of committed council
// state transitions. Entries are never removed or mutated; position in the
// log is the single source of truth for what happened in what order.
//
// The ledger carries no lock of its own: the council serializes every writer
// and reader behind its single mutex.
type Ledger struct {
	events []GovernanceEvent
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(event GovernanceEvent) {
	l.events = append(l.events, event)
}

// Events returns a copy of the full log in append order.
func (l *Ledger) Events() []GovernanceEvent {
	return append([]GovernanceEvent(nil), l.events...)
}

// EventsSince returns a copy of the entries after the given offset. The
// sequence number of an entry is its zero-based offset plus one.
func (l *Ledger) EventsSince(offset int) []GovernanceEvent {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(l.events) {
		return nil
	}
	return append([]GovernanceEvent(nil), l.events[offset:]...)
}

func (l *Ledger) Len() int {
	return len(l.events)
}
