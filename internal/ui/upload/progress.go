package upload

import (
	"math/rand"
	"time"
)

// ProgressInterval is the tick period of the simulated progress bar.
const ProgressInterval = 500 * time.Millisecond

const (
	progressStepMax = 10.0
	progressCeiling = 90.0
	progressHold    = 95.0
)

// SimulatedProgress drives a purely decorative progress bar while the browser
// posts the upload form. It is not tied to bytes sent: the width creeps up by
// a random step each tick and parks at 95% once it passes 90%. Completion is
// signalled by the page navigating to the result, never by this type.
type SimulatedProgress struct {
	width float64
	done  bool
	step  func() float64
}

// NewSimulatedProgress returns a progress simulation. A nil rnd uses the
// global math/rand source; rnd must return values in [0, 1).
func NewSimulatedProgress(rnd func() float64) *SimulatedProgress {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &SimulatedProgress{step: rnd}
}

// Advance applies one tick and returns the width to display and whether the
// simulation has parked. Further calls after parking return the held width.
func (p *SimulatedProgress) Advance() (float64, bool) {
	if p.done {
		return p.width, true
	}
	p.width += p.step() * progressStepMax
	if p.width > progressCeiling {
		p.width = progressHold
		p.done = true
	}
	return p.width, p.done
}

// Width is the last displayed width in percent.
func (p *SimulatedProgress) Width() float64 {
	return p.width
}

// Done reports whether the simulation has parked at its hold value.
func (p *SimulatedProgress) Done() bool {
	return p.done
}
