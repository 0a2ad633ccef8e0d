// Package clock drives a hart's cycle, timer and retirement counters
// from an Akita event engine.
package clock

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/nwf/sail-riscv/csr"
)

// HartClock is a ticking component that advances one hart's mcycle and
// mtime every cycle and accounts one retired instruction per cycle, up
// to a budget. It lets a discrete-event host clock the register model
// without owning a scheduler of its own.
type HartClock struct {
	*sim.TickingComponent

	hart      *csr.Hart
	remaining uint64
}

// NewHartClock creates a clock for the given hart that runs for the
// given number of cycles once started.
func NewHartClock(name string, engine sim.Engine, freq sim.Freq, hart *csr.Hart, cycles uint64) *HartClock {
	c := &HartClock{
		hart:      hart,
		remaining: cycles,
	}
	c.TickingComponent = sim.NewTickingComponent(name, engine, freq, c)
	return c
}

// Start schedules the first tick. The caller then runs the engine.
func (c *HartClock) Start() {
	if c.remaining > 0 {
		c.TickLater()
	}
}

// Remaining returns the number of cycles left in the budget.
func (c *HartClock) Remaining() uint64 { return c.remaining }

// Tick advances the hart by one cycle. It returns true while cycles
// remain so the engine keeps scheduling ticks.
func (c *HartClock) Tick() bool {
	if c.remaining == 0 {
		return false
	}

	c.hart.TickCycle()
	c.hart.RetireInstruction()
	c.remaining--

	return c.remaining > 0
}
