package tracking

import "github.com/iburimskiy/gesture-particles/internal/sim"

// mailbox holds at most one observation. A newer observation replaces an
// unread one, so the consumer only ever sees the latest frame.
type mailbox struct {
	ch chan sim.Observation
}

func newMailbox() *mailbox {
	return &mailbox{ch: make(chan sim.Observation, 1)}
}

// put stores obs and reports whether an unread observation was overwritten.
func (m *mailbox) put(obs sim.Observation) bool {
	for {
		select {
		case m.ch <- obs:
			return false
		default:
		}
		select {
		case <-m.ch:
			// Another producer may refill between the drain and the send;
			// loop until ours lands.
			select {
			case m.ch <- obs:
				return true
			default:
			}
		default:
		}
	}
}

func (m *mailbox) take() (sim.Observation, bool) {
	select {
	case obs := <-m.ch:
		return obs, true
	default:
		return sim.Observation{}, false
	}
}
