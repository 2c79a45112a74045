package manager

import "context"

// loop is the only goroutine touching the submission queue.
func (m *Manager) loop(ctx context.Context) {
	defer m.closeLoop()

	for {
		select {
		case r := <-m.work:
			m.pending.Push(r)
			m.dispatch()
		case <-m.wake:
			m.dispatch()
		case <-ctx.Done():
			m.drain()
			return
		}
	}
}

func (m *Manager) dispatch() {
	// requests cancelled while waiting for a slot land right away
	if m.maxConcurrency > 0 && m.pending.Len() > 0 {
		for _, r := range m.pending.Extract(func(r request) bool { return r.ctx.Err() != nil }) {
			m.start(r)
		}
	}

	for m.pending.Len() > 0 && (m.maxConcurrency == 0 || int(m.inFlight.Load()) < m.maxConcurrency) {
		m.start(m.pending.Pop())
	}
	m.pendingGauge.Store(int32(m.pending.Len()))
}

// drain hands every pending request to a runner. Their contexts are already
// cancelled so each one records StatusCancelled without running its work.
func (m *Manager) drain() {
	if n := m.pending.Len(); n > 0 {
		log().Warnw("submission queue not empty at stop", "pending", n)
	}
	for m.pending.Len() > 0 {
		m.start(m.pending.Pop())
	}
	m.pendingGauge.Store(0)
}

func (m *Manager) start(r request) {
	m.inFlight.Add(1)
	m.wg.Add(1)
	go m.runTask(r)
}
