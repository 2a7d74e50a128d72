package strata

// HoverState tracks whether the pointer is over a layer.
type HoverState uint8

const (
	HoverOut HoverState = iota
	HoverOver
)

// SampleState tracks whether a layer already received an event for the
// current pointer sample. It is reopened at the start of every sample.
type SampleState uint8

const (
	SampleOpen SampleState = iota
	SampleFired
)

// enter moves the layer into the hovered state. Legal only when it is not
// hovered and has not fired this sample.
func (l *Layer) enter() bool {
	if l.hover == HoverOver || l.sample == SampleFired {
		return false
	}
	l.hover = HoverOver
	l.sample = SampleFired
	return true
}

// leave moves a hovered layer out. Legal only when hovered and not fired
// this sample.
func (l *Layer) leave() bool {
	if l.hover != HoverOver || l.sample == SampleFired {
		return false
	}
	l.hover = HoverOut
	l.sample = SampleFired
	return true
}

// forceLeave drops the hover state regardless of the sample, used when the
// pointer leaves the surface.
func (l *Layer) forceLeave() bool {
	if l.hover != HoverOver {
		return false
	}
	l.hover = HoverOut
	return true
}

// fire claims the layer's single dispatch for this sample.
func (l *Layer) fire() bool {
	if l.sample == SampleFired {
		return false
	}
	l.sample = SampleFired
	return true
}

// reopen starts a new sample.
func (l *Layer) reopen() { l.sample = SampleOpen }

// DragPhase is the canvas-wide drag state.
type DragPhase uint8

const (
	DragIdle DragPhase = iota
	// DragPending: a draggable layer was pressed, no movement yet.
	DragPending
	Dragging
	// DragCancelled is passed through when the pointer leaves the surface
	// mid-drag; the machine returns to DragIdle right after.
	DragCancelled
)

func (p DragPhase) String() string {
	switch p {
	case DragPending:
		return "pending"
	case Dragging:
		return "dragging"
	case DragCancelled:
		return "cancelled"
	}
	return "idle"
}

type dragState struct {
	phase DragPhase
	layer *Layer
}

// press arms a drag for l. Legal from DragIdle only.
func (d *dragState) press(l *Layer) bool {
	if d.phase != DragIdle {
		return false
	}
	d.phase = DragPending
	d.layer = l
	return true
}

// move reports whether this move starts the drag (DragPending → Dragging).
func (d *dragState) move() (started bool) {
	if d.phase == DragPending {
		d.phase = Dragging
		d.layer.dragging = true
		return true
	}
	return false
}

// release ends any drag and returns the layer that was being dragged, or
// nil when the drag never started moving.
func (d *dragState) release() *Layer {
	l := d.layer
	wasDragging := d.phase == Dragging
	d.reset()
	if !wasDragging {
		return nil
	}
	return l
}

// cancel aborts the drag. It returns the layer whose drag was cancelled, or
// nil when nothing was armed.
func (d *dragState) cancel() *Layer {
	if d.phase == DragIdle {
		return nil
	}
	d.phase = DragCancelled
	l := d.layer
	d.reset()
	return l
}

func (d *dragState) reset() {
	if d.layer != nil {
		d.layer.dragging = false
	}
	d.phase = DragIdle
	d.layer = nil
}

func (d *dragState) active() bool { return d.phase == Dragging }
