// Package camera provides the free-fly camera used to explore the world.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Controls is one frame of movement input, decoupled from the input backend.
type Controls struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool
	Boost             bool

	// Mouse motion since the last frame, in pixels.
	MouseDX, MouseDY float32
}

// Config holds camera tuning.
type Config struct {
	FOV              float32 // Vertical, degrees
	Near, Far        float32
	MouseSensitivity float32 // Degrees per pixel
	Speed            float32 // Units per second
	BoostSpeed       float32
}

// FlyCamera is a first-person camera with mouse look. Angles are degrees.
type FlyCamera struct {
	Position mgl32.Vec3

	// Rotation about X (pitch), Y (yaw) and Z (roll).
	Pitch, Yaw, Roll float32

	cfg Config
}

// NewFly creates a fly camera at pos looking down -Z.
func NewFly(cfg Config, pos mgl32.Vec3) *FlyCamera {
	return &FlyCamera{Position: pos, cfg: cfg}
}

// Config returns the camera tuning.
func (c *FlyCamera) Config() Config {
	return c.cfg
}

// Update applies mouse look then movement for a frame of length dt seconds.
func (c *FlyCamera) Update(in Controls, dt float32) {
	c.Yaw += in.MouseDX * c.cfg.MouseSensitivity
	c.Pitch += in.MouseDY * c.cfg.MouseSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -90, 90)

	speed := c.cfg.Speed
	if in.Boost {
		speed = c.cfg.BoostSpeed
	}
	step := speed * dt

	forward := c.Forward()
	right := c.Right()

	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Backward {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	if in.Up {
		move[1]++
	}
	if in.Down {
		move[1]--
	}

	// Each held key contributes a full step, diagonals are not normalized.
	c.Position = c.Position.Add(move.Mul(step))
}

// Forward returns the horizontal unit vector the camera walks along.
// Pitch does not tilt movement.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{float32(math.Sin(yaw)), 0, float32(-math.Cos(yaw))}
}

// Right returns the horizontal unit vector 90° clockwise from Forward.
func (c *FlyCamera) Right() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw + 90))
	return mgl32.Vec3{float32(math.Sin(yaw)), 0, float32(-math.Cos(yaw))}
}

// ViewMatrix rotates about X, then Y, then Z, and translates by -Position.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Yaw))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.Roll))).
		Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// ProjectionMatrix returns the perspective projection for a viewport aspect ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.cfg.FOV), aspect, c.cfg.Near, c.cfg.Far)
}
