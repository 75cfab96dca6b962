package anim

const DefaultCameraTime float32 = 0.8

// CameraOrbit interpolates the orbit angles and distance of a look-at camera.
type CameraOrbit struct {
	StartPhi, TargetPhi     float32
	StartTheta, TargetTheta float32

	StartDistance, TargetDistance float32

	// LegacyAngles reproduces the old "(target-start)*t" angle formula, which
	// rotates from zero instead of from the start angles.
	LegacyAngles bool

	totalTime  float32
	timePassed float32
}

func NewCameraOrbit(totalTime float32) *CameraOrbit {
	return &CameraOrbit{totalTime: totalTime}
}

func (c *CameraOrbit) SetAngles(startPhi, targetPhi, startTheta, targetTheta float32) {
	c.StartPhi, c.TargetPhi = startPhi, targetPhi
	c.StartTheta, c.TargetTheta = startTheta, targetTheta
}

func (c *CameraOrbit) SetDistance(start, target float32) {
	c.StartDistance, c.TargetDistance = start, target
}

func (c *CameraOrbit) SetTotalTime(seconds float32) {
	c.totalTime = seconds
}

func (c *CameraOrbit) TotalTime() float32 {
	return c.totalTime
}

func (c *CameraOrbit) TimePassed() float32 {
	return c.timePassed
}

func (c *CameraOrbit) Reset() {
	c.timePassed = 0
}

func (c *CameraOrbit) progress() float32 {
	if c.totalTime <= 0 {
		return 1
	}
	return c.timePassed / c.totalTime
}

// Advance accumulates dt and returns the interpolated (phi, theta).
func (c *CameraOrbit) Advance(dt float32) (phi, theta float32) {
	if c.totalTime <= 0 {
		c.timePassed = 0
	} else {
		if dt > 0 {
			c.timePassed += dt
		}
		if c.timePassed > c.totalTime {
			c.timePassed = c.totalTime
		}
	}
	return c.Angles()
}

// Angles returns the angles for the current time without advancing it.
func (c *CameraOrbit) Angles() (phi, theta float32) {
	t := c.progress()
	if c.LegacyAngles {
		return (c.TargetPhi - c.StartPhi) * t, (c.TargetTheta - c.StartTheta) * t
	}
	if t >= 1 {
		return c.TargetPhi, c.TargetTheta
	}
	return lerp(c.StartPhi, c.TargetPhi, t), lerp(c.StartTheta, c.TargetTheta, t)
}

// Distance returns the orbit distance matching the current time.
func (c *CameraOrbit) Distance() float32 {
	t := c.progress()
	if t >= 1 {
		return c.TargetDistance
	}
	return lerp(c.StartDistance, c.TargetDistance, t)
}

func (c *CameraOrbit) IsOver() bool {
	return c.totalTime <= 0 || c.timePassed >= c.totalTime
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
