package evergreen

// pointerSample is one reading of a pointer in screen pixels. Scripted input
// is a queue of samples fed through processPointer exactly like the mouse.
type pointerSample struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// sampleQueue holds scripted samples for pointer 0. One sample is consumed
// per frame, replacing the real mouse for that frame. The backing array is
// reused once the queue drains.
type sampleQueue struct {
	samples []pointerSample
	head    int
}

func (q *sampleQueue) push(x, y float64, pressed bool) {
	if q.head == len(q.samples) {
		q.samples, q.head = q.samples[:0], 0
	}
	q.samples = append(q.samples, pointerSample{x: x, y: y, pressed: pressed, button: MouseButtonLeft})
}

func (q *sampleQueue) pop() (pointerSample, bool) {
	if q.head == len(q.samples) {
		return pointerSample{}, false
	}
	p := q.samples[q.head]
	q.head++
	return p, true
}

// pending returns the number of samples not yet consumed.
func (q *sampleQueue) pending() int { return len(q.samples) - q.head }

// InjectPress queues a left-button press at (x, y).
func (s *Scene) InjectPress(x, y float64) { s.inject.push(x, y, true) }

// InjectMove queues the held pointer moving to (x, y).
func (s *Scene) InjectMove(x, y float64) { s.inject.push(x, y, true) }

// InjectRelease queues the left button coming up at (x, y).
func (s *Scene) InjectRelease(x, y float64) { s.inject.push(x, y, false) }

// InjectClick queues a press and a release at (x, y), one frame each. On the
// button this toggles; on a particle it taps the surface.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a drag from (fromX, fromY) to (toX, toY) spread evenly
// over frames samples: a press, held moves, and a release at the end point.
// Fewer than 2 frames still queue the press and the release.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	last := frames - 1
	for i := 0; i < last; i++ {
		t := float64(i) / float64(last)
		s.inject.push(lerp(fromX, toX, t), lerp(fromY, toY, t), true)
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput feeds the next scripted sample to pointer 0 and
// reports whether there was one, in which case the real mouse is skipped.
func (s *Scene) processInjectedInput() bool {
	p, ok := s.inject.pop()
	if ok {
		s.processPointer(0, p.x, p.y, p.pressed, p.button)
	}
	return ok
}
