package fchessg

import (
	"time"
)

// maxFrameDt caps the step a stalled frame can feed into the animations.
const maxFrameDt = 250 * time.Millisecond

type Time struct {
	Time time.Time
	Dt   time.Duration
}

func (t *Time) DeltaSeconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	timeResource.advance(time.Now())
}

func (t *Time) advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	if t.Dt > maxFrameDt {
		t.Dt = maxFrameDt
	}
	if t.Dt < 0 {
		t.Dt = 0
	}
	t.Time = now
}
