package fchessg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_KeyEdges(t *testing.T) {
	in := &Input{}

	in.SetKey(KeyEnter, true)
	assert.True(t, in.IsDown(KeyEnter))
	assert.True(t, in.IsJustPressed(KeyEnter))
	assert.False(t, in.IsJustReleased(KeyEnter))

	in.SetKey(KeyEnter, true)
	assert.True(t, in.IsDown(KeyEnter))
	assert.False(t, in.IsJustPressed(KeyEnter))

	in.SetKey(KeyEnter, false)
	assert.False(t, in.IsDown(KeyEnter))
	assert.True(t, in.IsJustReleased(KeyEnter))

	in.SetKey(KeyEnter, false)
	assert.False(t, in.IsJustReleased(KeyEnter))
}

func TestInput_CursorDeltaOnlyWhenCaptured(t *testing.T) {
	in := &Input{}
	in.SetCursor(10, 20)
	in.SetCursor(15, 10)
	assert.Zero(t, in.MouseDeltaX)
	assert.Zero(t, in.MouseDeltaY)

	assert.True(t, in.ToggleCapture())
	in.SetCursor(25, 5)
	assert.Equal(t, 10.0, in.MouseDeltaX)
	assert.Equal(t, -5.0, in.MouseDeltaY)

	assert.False(t, in.ToggleCapture())
	assert.Zero(t, in.MouseDeltaX)
}

func TestInput_ScrollIsConsumed(t *testing.T) {
	in := &Input{}
	in.AddScroll(0, 1)
	in.AddScroll(0.5, 2)

	x, y := in.ConsumeScroll()
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 3.0, y)

	x, y = in.ConsumeScroll()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestGamepad_DeadZones(t *testing.T) {
	pad := &Gamepad{}
	pad.Axes[GamepadLeftX] = 0.05
	pad.Axes[GamepadLeftY] = -0.5
	pad.Axes[GamepadLeftTrigger] = 0.005
	pad.Axes[GamepadRightTrigger] = 0.05

	assert.Zero(t, pad.Axis(GamepadLeftX))
	assert.Equal(t, float32(-0.5), pad.Axis(GamepadLeftY))
	assert.Zero(t, pad.Axis(GamepadLeftTrigger))
	assert.Equal(t, float32(0.05), pad.Axis(GamepadRightTrigger))
}

func TestGamepad_StartEdge(t *testing.T) {
	pad := &Gamepad{}
	pad.setStart(true)
	assert.True(t, pad.StartJustPressed)
	pad.setStart(true)
	assert.False(t, pad.StartJustPressed)
	pad.setStart(false)
	pad.setStart(true)
	assert.True(t, pad.StartJustPressed)
}

func TestTime_DtIsClamped(t *testing.T) {
	clock := &Time{}
	start := clock.Time

	clock.advance(start.Add(maxFrameDt * 4))
	assert.Equal(t, maxFrameDt, clock.Dt)
	assert.InDelta(t, 0.25, clock.DeltaSeconds(), 1e-6)

	next := clock.Time.Add(16_000_000)
	clock.advance(next)
	assert.InDelta(t, 0.016, clock.DeltaSeconds(), 1e-6)
}
