package main

import (
	"math"
	"testing"

	"github.com/taigrr/wirecut/pkg/math3d"
)

func TestMotionAxisDecays(t *testing.T) {
	a := NewMotionAxis(60)
	a.Velocity = 0.5

	first := a.Step()
	if first != 0.5 {
		t.Errorf("first step = %v, want 0.5", first)
	}

	prev := math.Abs(a.Velocity)
	if prev >= 0.5 {
		t.Errorf("velocity after one step = %v, want below 0.5", a.Velocity)
	}
	for range 600 {
		a.Step()
	}
	if a.Moving() {
		t.Errorf("axis still moving after 10s: velocity %v", a.Velocity)
	}
	if got := a.Step(); got != 0 {
		t.Errorf("step at rest = %v, want 0", got)
	}
}

func TestMotionImpulseAndStop(t *testing.T) {
	m := NewMotion(60)
	if m.Moving() {
		t.Fatal("new motion should be at rest")
	}

	m.ApplyImpulse(0.1, -0.2, 0.3)
	if !m.Moving() {
		t.Fatal("motion should move after an impulse")
	}
	got := m.Step()
	want := math3d.V3(0.1, -0.2, 0.3)
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Step() = %v, want %v", got, want)
	}

	m.Stop()
	if m.Moving() {
		t.Error("motion should be at rest after Stop")
	}
}

func TestInputTake(t *testing.T) {
	var in Input
	if _, dirty := in.Take(); dirty {
		t.Fatal("empty input should not be dirty")
	}

	in.Translate(math3d.V3(1, 0, 0))
	in.Translate(math3d.V3(0, 2, 0))
	in.Rotate(math3d.V3(0, 0, 0.5))
	in.Zoom(5)
	in.Zoom(-2)

	d, dirty := in.Take()
	if !dirty {
		t.Error("input should be dirty")
	}
	if d.Translation != math3d.V3(1, 2, 0) {
		t.Errorf("Translation = %v, want (1, 2, 0)", d.Translation)
	}
	if d.Rotation != math3d.V3(0, 0, 0.5) {
		t.Errorf("Rotation = %v, want (0, 0, 0.5)", d.Rotation)
	}
	if d.FocalDelta != 3 {
		t.Errorf("FocalDelta = %v, want 3", d.FocalDelta)
	}

	if d, dirty := in.Take(); dirty || !d.IsZero() {
		t.Errorf("second Take = %+v, %v; want zero, false", d, dirty)
	}

	in.Touch()
	if d, dirty := in.Take(); !dirty || !d.IsZero() {
		t.Errorf("Touch then Take = %+v, %v; want zero, true", d, dirty)
	}
}
