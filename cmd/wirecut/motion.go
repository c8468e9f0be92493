package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/wirecut/pkg/math3d"
	"github.com/taigrr/wirecut/pkg/render"
)

// restVelocity is the speed below which an axis snaps to rest, so the
// viewer stops reprojecting once a drag has coasted out.
const restVelocity = 1e-5

// MotionAxis is the velocity of one rotation axis, decayed toward zero by a
// critically damped spring after each frame.
type MotionAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity used while animating Velocity toward 0
}

// NewMotionAxis creates an axis at rest.
func NewMotionAxis(fps int) MotionAxis {
	return MotionAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step returns this frame's rotation and decays the velocity.
func (a *MotionAxis) Step() float64 {
	v := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	if math.Abs(a.Velocity) < restVelocity && math.Abs(a.velAccel) < restVelocity {
		a.Velocity, a.velAccel = 0, 0
	}
	return v
}

// Moving reports whether the axis will contribute a non-zero step.
func (a *MotionAxis) Moving() bool {
	return a.Velocity != 0
}

// Motion holds the spring-smoothed rotation fed by mouse drags.
type Motion struct {
	Pitch, Yaw, Roll MotionAxis
	fps              int
}

// NewMotion creates a motion state at rest.
func NewMotion(fps int) *Motion {
	m := &Motion{fps: fps}
	m.Stop()
	return m
}

// ApplyImpulse adds angular velocity in radians per frame.
func (m *Motion) ApplyImpulse(pitch, yaw, roll float64) {
	m.Pitch.Velocity += pitch
	m.Yaw.Velocity += yaw
	m.Roll.Velocity += roll
}

// Stop brings every axis to rest.
func (m *Motion) Stop() {
	m.Pitch = NewMotionAxis(m.fps)
	m.Yaw = NewMotionAxis(m.fps)
	m.Roll = NewMotionAxis(m.fps)
}

// Moving reports whether any axis is still turning.
func (m *Motion) Moving() bool {
	return m.Pitch.Moving() || m.Yaw.Moving() || m.Roll.Moving()
}

// Step advances the springs one frame and returns the rotation to apply.
func (m *Motion) Step() math3d.Vec3 {
	return math3d.V3(m.Pitch.Step(), m.Yaw.Step(), m.Roll.Step())
}

// Input accumulates discrete view changes from keys and the mouse wheel
// between two frames.
type Input struct {
	delta render.CameraDelta
	dirty bool
}

// Translate moves the world by v.
func (in *Input) Translate(v math3d.Vec3) {
	in.delta.Translation = in.delta.Translation.Add(v)
	in.dirty = true
}

// Rotate turns the world by the Euler angles in r.
func (in *Input) Rotate(r math3d.Vec3) {
	in.delta.Rotation = in.delta.Rotation.Add(r)
	in.dirty = true
}

// Zoom changes the focal length by df.
func (in *Input) Zoom(df float64) {
	in.delta.FocalDelta += df
	in.dirty = true
}

// Touch forces a reprojection without changing the view.
func (in *Input) Touch() {
	in.dirty = true
}

// Take returns the accumulated delta and resets the input. The bool
// reports whether anything asked for a new frame.
func (in *Input) Take() (render.CameraDelta, bool) {
	d, dirty := in.delta, in.dirty
	*in = Input{}
	return d, dirty
}
