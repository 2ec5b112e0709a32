package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

// Camera is a fixed perspective camera looking down -z from CameraDistance.
// The model transform applies the uniform field scale and the Y rotation.
type Camera struct {
	width, height int
	mvp           mgl32.Mat4
	// pixels per world unit at unit clip w, for point size attenuation
	focal float32
}

// NewCamera builds the transform for a frame of the given size.
func NewCamera(width, height int, scale, rotation float64) Camera {
	aspect := float32(width) / float32(height)
	fov := mgl32.DegToRad(config.CameraFOV)
	proj := mgl32.Perspective(fov, aspect, config.CameraNear, config.CameraFar)
	view := mgl32.LookAtV(
		mgl32.Vec3{0, 0, config.CameraDistance},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
	s := float32(scale)
	model := mgl32.HomogRotate3DY(float32(rotation)).Mul4(mgl32.Scale3D(s, s, s))
	return Camera{
		width:  width,
		height: height,
		mvp:    proj.Mul4(view).Mul4(model),
		focal:  float32(height) / 2 / float32(math.Tan(float64(fov)/2)),
	}
}

// Project maps a world point to screen pixels. w is the clip-space depth;
// ok is false for points behind the camera or outside the frustum depth.
func (c Camera) Project(p mgl32.Vec3) (x, y, w float32, ok bool) {
	clip := c.mvp.Mul4x1(p.Vec4(1))
	w = clip[3]
	if w <= config.CameraNear {
		return 0, 0, w, false
	}
	ndcX, ndcY, ndcZ := clip[0]/w, clip[1]/w, clip[2]/w
	if ndcZ < -1 || ndcZ > 1 {
		return 0, 0, w, false
	}
	x = (ndcX + 1) / 2 * float32(c.width)
	y = (1 - ndcY) / 2 * float32(c.height)
	return x, y, w, true
}

// PointSize is the on-screen size in pixels of a world-size point at clip
// depth w.
func (c Camera) PointSize(size float64, w float32) float32 {
	return float32(size) * c.focal / w
}
