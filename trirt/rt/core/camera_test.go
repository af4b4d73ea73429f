package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraBasis(t *testing.T) {
	cam := NewCameraState()

	if !cam.GetForward().ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Errorf("forward at rest should be -Z, got %v", cam.GetForward())
	}
	if !cam.GetRight().ApproxEqual(mgl32.Vec3{1, 0, 0}) {
		t.Errorf("right at rest should be +X, got %v", cam.GetRight())
	}
	if !cam.GetUp().ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("up at rest should be +Y, got %v", cam.GetUp())
	}
}

func TestCameraGenerateRayCenter(t *testing.T) {
	cam := NewCameraState()
	ray := cam.GenerateRay(320, 240, 640, 480)

	if !ray.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("center ray should look down -Z, got %v", ray.Direction)
	}
	if !closeEnough(ray.Direction.Len(), 1, 1e-5) {
		t.Errorf("direction should be unit length, got %f", ray.Direction.Len())
	}
}

func TestCameraGenerateRayCorners(t *testing.T) {
	// 90 degree vertical FOV, square image: the top-left corner is at (-1, 1, -1)
	cam := NewCameraState()
	ray := cam.GenerateRay(0, 0, 100, 100)

	want := mgl32.Vec3{-1, 1, -1}.Normalize()
	if !ray.Direction.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("top-left ray: got %v want %v", ray.Direction, want)
	}

	// bottom-right of a 2:1 image stretches X by the aspect ratio
	ray = cam.GenerateRay(200, 100, 200, 100)
	want = mgl32.Vec3{2, -1, -1}.Normalize()
	if !ray.Direction.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("bottom-right ray: got %v want %v", ray.Direction, want)
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewCameraState()
	cam.Position = mgl32.Vec3{0, 5, 10}
	target := mgl32.Vec3{3, 0, -2}
	cam.LookAt(target)

	want := target.Sub(cam.Position).Normalize()
	if !cam.GetForward().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("forward after LookAt: got %v want %v", cam.GetForward(), want)
	}
}

func TestCameraProjectRoundTrip(t *testing.T) {
	cam := NewCameraState()
	cam.FOV = 60
	cam.Position = mgl32.Vec3{1, 2, 3}
	cam.Yaw = 0.3
	cam.Pitch = -0.2

	point := cam.Position.Add(cam.GetForward().Mul(10)).Add(cam.GetRight().Mul(1.5)).Add(cam.GetUp().Mul(-0.5))
	x, y, ok := cam.Project(point, 800, 600)
	if !ok {
		t.Fatalf("point should be on screen, got %f %f", x, y)
	}

	ray := cam.GenerateRay(x, y, 800, 600)
	toPoint := point.Sub(cam.Position).Normalize()
	angle := math.Acos(float64(mgl32.Clamp(ray.Direction.Dot(toPoint), -1, 1)))
	if angle > 1e-3 {
		t.Errorf("ray through projected pixel misses the point by %f rad", angle)
	}

	if _, _, ok := cam.Project(cam.Position.Sub(cam.GetForward()), 800, 600); ok {
		t.Error("point behind the camera should not project")
	}
}
