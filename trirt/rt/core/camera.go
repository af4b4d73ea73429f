package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraState is a Y-up pinhole camera. At zero yaw and pitch it looks down -Z.
type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	// Vertical field of view in degrees.
	FOV float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position: mgl32.Vec3{0, 0, 0},
		FOV:      90,
	}
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
	}
}

func (c *CameraState) GetRight() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		0,
		float32(math.Sin(float64(c.Yaw))),
	}
}

func (c *CameraState) GetUp() mgl32.Vec3 {
	return c.GetRight().Cross(c.GetForward())
}

// LookAt points the camera at target.
func (c *CameraState) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = float32(math.Asin(float64(mgl32.Clamp(d.Y(), -1, 1))))
	c.Yaw = float32(math.Atan2(float64(d.X()), float64(-d.Z())))
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(c.GetForward()), mgl32.Vec3{0, 1, 0})
}

// GenerateRay maps a point on the image plane, in pixel units with the origin
// at the top-left corner, to a world-space ray with a unit direction.
func (c *CameraState) GenerateRay(px, py float32, width, height int) Ray {
	w, h := float32(width), float32(height)

	// [0,1] across the image, then [-1,1] with +Y up
	sx := 2*(px/w) - 1
	sy := 1 - 2*(py/h)

	scale := float32(math.Tan(float64(mgl32.DegToRad(c.FOV) / 2)))
	sx *= scale * w / h
	sy *= scale

	dir := c.GetRight().Mul(sx).Add(c.GetUp().Mul(sy)).Add(c.GetForward())
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// Project maps a world position to pixel coordinates. The bool is false when
// the point is behind the camera or off screen.
func (c *CameraState) Project(pos mgl32.Vec3, width, height int) (float32, float32, bool) {
	if width == 0 || height == 0 {
		return 0, 0, false
	}
	w, h := float32(width), float32(height)
	proj := mgl32.Perspective(mgl32.DegToRad(c.FOV), w/h, 0.1, 1000.0)
	clip := proj.Mul4(c.GetViewMatrix()).Mul4x1(pos.Vec4(1.0))

	if clip.W() < 0.1 {
		return 0, 0, false
	}

	ndc := clip.Vec3().Mul(1.0 / clip.W())
	x := (ndc.X()*0.5 + 0.5) * w
	y := (1.0 - (ndc.Y()*0.5 + 0.5)) * h

	if x < 0 || x > w || y < 0 || y > h {
		return x, y, false
	}
	return x, y, true
}
