package strata

// InjectPress queues a mousedown at the given surface coordinates. Queued
// events are delivered one per call to ProcessInjected.
func (s *BasicSurface) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, PointerEvent{Type: EventMouseDown, X: x, Y: y})
}

// InjectMove queues a mousemove. Use it between InjectPress and
// InjectRelease to simulate a drag.
func (s *BasicSurface) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, PointerEvent{Type: EventMouseMove, X: x, Y: y})
}

// InjectRelease queues a mouseup followed by a click at the same position.
func (s *BasicSurface) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue,
		PointerEvent{Type: EventMouseUp, X: x, Y: y},
		PointerEvent{Type: EventClick, X: x, Y: y},
	)
}

// InjectClick queues a press and a release at the same position.
func (s *BasicSurface) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectLeave queues the pointer leaving the surface.
func (s *BasicSurface) InjectLeave() {
	s.injectQueue = append(s.injectQueue, PointerEvent{Type: EventMouseOut, X: -1, Y: -1})
}

// InjectDrag queues a full drag: press at (fromX, fromY), moves linearly
// interpolated over steps, and a release at (toX, toY). steps below 1 is
// treated as 1.
func (s *BasicSurface) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	s.InjectPress(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// Pending reports how many injected events are still queued.
func (s *BasicSurface) Pending() int { return len(s.injectQueue) }

// ProcessInjected dispatches the oldest queued event. It reports whether an
// event was delivered, so hosts can skip real input for that frame.
func (s *BasicSurface) ProcessInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.Dispatch(ev)
	return true
}

// FlushInjected dispatches every queued event in order.
func (s *BasicSurface) FlushInjected() {
	for s.ProcessInjected() {
	}
}
