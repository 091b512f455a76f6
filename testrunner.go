package evergreen

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action of a test script. Fields unused by an action are
// ignored.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Factor float64 `json:"factor,omitempty"`
}

// scriptActions performs each step action on the scene and returns how many
// further frames the runner idles before the next step.
var scriptActions = map[string]func(s *Scene, st scriptStep) int{
	"screenshot": func(s *Scene, st scriptStep) int {
		s.Screenshot(st.Label)
		return 0
	},
	"click": func(s *Scene, st scriptStep) int {
		s.InjectClick(st.X, st.Y)
		return 0
	},
	"drag": func(s *Scene, st scriptStep) int {
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		return 0
	},
	// The frame that runs the wait counts as its first.
	"wait": func(_ *Scene, st scriptStep) int {
		return max(st.Frames-1, 0)
	},
	"toggle": func(s *Scene, _ scriptStep) int {
		s.Toggle()
		return 0
	},
	"zoom": func(s *Scene, st scriptStep) int {
		s.camera.Zoom(st.Factor)
		return 0
	},
	"reset": func(s *Scene, st scriptStep) int {
		s.camera.Reset(float32(max(st.Frames, 1)) / 60)
		return 0
	},
}

// TestRunner plays a scripted sequence of input, mode changes, camera moves
// and screenshots, one step per frame. Scripted pointer input goes through
// the same pointer handling as the mouse. Attach it with SetTestRunner.
type TestRunner struct {
	steps []scriptStep
	next  int
	idle  int
	done  bool
}

// LoadTestScript parses a JSON script of the form {"steps": [...]}. Every
// step must name a known action.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := scriptActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the scene. Update steps it before input
// is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one script step. It holds while scripted pointer samples
// are still queued or an idle count remains.
func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, s.inject.pending() > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next == len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	r.idle = scriptActions[st.Action](s, st)

	if r.next == len(r.steps) && r.idle == 0 && s.inject.pending() == 0 {
		r.done = true
	}
}
