package strata

import (
	"encoding/json"
	"fmt"
)

// frameDelta is the simulated frame length, in seconds, a TestRunner feeds
// to Tick.
const frameDelta = float32(1.0 / 60)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer events, animation frames and
// screenshots for automated testing of a canvas over a [BasicSurface].
//
// Supported actions: "click", "move", "drag", "leave", "wait" (frames) and
// "screenshot" (label).
type TestRunner struct {
	// ScreenshotDir is where "screenshot" steps write their PNG files.
	ScreenshotDir string

	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	shots     []string
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{ScreenshotDir: "screenshots", steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Screenshots returns the paths written by "screenshot" steps so far.
func (r *TestRunner) Screenshots() []string { return r.shots }

// Step advances the runner by one frame: it delivers at most one injected
// event, ticks animations, then executes the next step once the injection
// queue is empty and any wait has elapsed.
func (r *TestRunner) Step(c *Canvas, s *BasicSurface) error {
	if r.done {
		return nil
	}
	s.ProcessInjected()
	c.Tick(frameDelta)
	if s.Pending() > 0 {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "screenshot":
		var path string
		path, err = Screenshot(s, r.ScreenshotDir, st.Label)
		if err == nil {
			r.shots = append(r.shots, path)
		}
	case "click":
		s.InjectClick(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "leave":
		s.InjectLeave()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		err = fmt.Errorf("test script: step %d: unknown action %q", r.cursor-1, st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && s.Pending() == 0 {
		r.done = true
	}
	return err
}

// Run steps the runner until it is done or maxFrames frames have passed.
func (r *TestRunner) Run(c *Canvas, s *BasicSurface, maxFrames int) error {
	for i := 0; i < maxFrames && !r.done; i++ {
		if err := r.Step(c, s); err != nil {
			return err
		}
	}
	if !r.done {
		return fmt.Errorf("test script: not done after %d frames", maxFrames)
	}
	return nil
}
