// Package animations holds the frame animator that acts as the animation
// host for attack commands: it reports which instance is playing and how far
// through it playback is.
package animations

type Animation struct {
	First            int
	Last             int
	Step             int     // how many indices do we move per frame
	SpeedInTps       float32 // how many ticks before next frame
	frameCounter     float32
	frame            int
	elapsed          int
	instance         uint64
	Looped           bool
	FreezeOnComplete bool // If true, stay on last frame instead of looping
}

func (a *Animation) Update() {
	a.elapsed++
	a.frameCounter -= 1.0
	if a.frameCounter < 0.0 {
		a.frameCounter = a.SpeedInTps
		a.frame += a.step()
		if a.frame > a.Last {
			a.Looped = true
			if a.FreezeOnComplete {
				// Stay on last frame
				a.frame = a.Last
			} else {
				// loop back to the beginning
				a.frame = a.First
			}
		}
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

// Restart rewinds playback and starts a new instance.
func (a *Animation) Restart() {
	a.frame = a.First
	a.frameCounter = a.SpeedInTps
	a.elapsed = 0
	a.Looped = false
	a.instance++
}

// Instance changes every time the animation restarts.
func (a *Animation) Instance() uint64 {
	return a.instance
}

// Frames is the number of frames in one pass.
func (a *Animation) Frames() int {
	if a.Last < a.First {
		return 1
	}
	return (a.Last-a.First)/a.step() + 1
}

// DurationTicks is how many Updates one pass takes. Each frame is shown for
// SpeedInTps+1 ticks.
func (a *Animation) DurationTicks() int {
	speed := int(a.SpeedInTps)
	if speed < 0 {
		speed = 0
	}
	return a.Frames() * (speed + 1)
}

// NormalizedTime is the playback progress of the current instance: 0 at
// restart and 1 when the last frame finishes. It keeps growing past 1.
func (a *Animation) NormalizedTime() float64 {
	return float64(a.elapsed) / float64(a.DurationTicks())
}

func (a *Animation) step() int {
	if a.Step <= 0 {
		return 1
	}
	return a.Step
}

func NewAnimation(first, last, step int, speed float32) *Animation {
	return &Animation{
		First:        first,
		Last:         last,
		Step:         step,
		SpeedInTps:   speed,
		frameCounter: speed,
		frame:        first,
		Looped:       false,
	}
}
