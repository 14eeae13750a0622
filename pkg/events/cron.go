package events

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/seqflow/pkg/bridge"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// CronSource emits the current time into a bridge on a cron schedule.
// Ticks the consumer does not pull in time coalesce to the most recent
// one, which is usually what a schedule-driven pipeline wants.
type CronSource struct {
	bridge *bridge.Bridge[time.Time]
	runner *cron.Cron
}

// CronTicks creates a CronSource firing per the cron expression spec.
// Standard five-field expressions and descriptors such as "@hourly"
// are accepted. The schedule starts immediately.
func CronTicks(spec string) (*CronSource, error) {
	b := bridge.New[time.Time]()
	runner := cron.New()

	if _, err := runner.AddFunc(spec, func() {
		_ = b.Emit(time.Now())
	}); err != nil {
		return nil, err
	}
	runner.Start()

	return &CronSource{bridge: b, runner: runner}, nil
}

// Sequence returns the pull side of the tick stream.
func (c *CronSource) Sequence() sequence.Sequence[time.Time] {
	return c.bridge.Sequence()
}

// Bridge exposes the underlying bridge for manual control, such as
// failing the stream from the producer side.
func (c *CronSource) Bridge() *bridge.Bridge[time.Time] {
	return c.bridge
}

// Stop halts the schedule and completes the tick stream. Ticks already
// pending are still delivered.
func (c *CronSource) Stop() {
	ctx := c.runner.Stop()
	<-ctx.Done()
	c.bridge.Complete()
}
