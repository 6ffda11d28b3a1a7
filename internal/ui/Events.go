package ui

import tea "github.com/charmbracelet/bubbletea"

// sessionEventsMsg carries the session events published during one Update,
// in publication order.
type sessionEventsMsg []tea.Msg

// eventQueue buffers session events until the model hands them back to the
// bubbletea loop. The session calls listen synchronously from inside Update.
type eventQueue struct {
	msgs []tea.Msg
}

func (q *eventQueue) listen(msg tea.Msg) {
	q.msgs = append(q.msgs, msg)
}

func (q *eventQueue) drain() tea.Cmd {
	if len(q.msgs) == 0 {
		return nil
	}
	msgs := sessionEventsMsg(q.msgs)
	q.msgs = nil
	return func() tea.Msg { return msgs }
}
