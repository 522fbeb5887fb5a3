package gfx

import "github.com/go-gl/mathgl/mgl32"

// Transform places a mesh in the world.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetRotation sets the rotation to angle radians around axis.
func (t *Transform) SetRotation(axis mgl32.Vec3, angle float32) {
	if axis.Len() == 0 {
		t.Rotation = mgl32.QuatIdent()
		return
	}
	t.Rotation = mgl32.QuatRotate(angle, axis.Normalize())
}

// Matrix returns the model matrix: translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	sc := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}
