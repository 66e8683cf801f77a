package arspawn

import (
	"github.com/go-gl/mathgl/mgl32"
)

// geometryEpsilon is the shortest vector still treated as a direction.
const geometryEpsilon = 1e-4

var (
	// WorldUp is the +Y axis of the tracked environment.
	WorldUp = mgl32.Vec3{0, 1, 0}
	// DefaultForward is used whenever the camera looks (nearly) straight up or down.
	DefaultForward = mgl32.Vec3{0, 0, 1}
)

// Pose is a world space position and orientation.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityPose sits at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// CameraPose is what the AR camera reports every frame.
type CameraPose struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
}

// HorizontalForward drops the vertical component of forward and renormalizes it.
// A forward vector with no usable horizontal component yields DefaultForward.
func HorizontalForward(forward mgl32.Vec3) mgl32.Vec3 {
	flat := mgl32.Vec3{forward[0], 0, forward[2]}
	if flat.Len() < geometryEpsilon {
		return DefaultForward
	}
	return flat.Normalize()
}

// LookRotation returns the rotation whose +Z axis points along forward and whose +Y axis is
// as close to up as possible.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	if forward.Len() < geometryEpsilon {
		return mgl32.QuatIdent()
	}
	f := forward.Normalize()

	right := up.Cross(f)
	if right.Len() < geometryEpsilon {
		// forward is parallel to up, any right axis perpendicular to it will do
		right = mgl32.Vec3{1, 0, 0}.Cross(f)
		if right.Len() < geometryEpsilon {
			right = mgl32.Vec3{0, 0, 1}.Cross(f)
		}
	}
	right = right.Normalize()
	u := f.Cross(right)

	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, u, f).Mat4()).Normalize()
}

// EulerRotation builds a rotation from angles in degrees, applying Z first, then X, then Y.
func EulerRotation(degrees mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(degrees[0]), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(mgl32.DegToRad(degrees[1]), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(mgl32.DegToRad(degrees[2]), mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// rayPlaneY intersects a ray with the horizontal plane at height y.
// Only hits in front of the origin count.
func rayPlaneY(origin, dir mgl32.Vec3, y float32) (mgl32.Vec3, float32, bool) {
	if dir[1] > -geometryEpsilon && dir[1] < geometryEpsilon {
		return mgl32.Vec3{}, 0, false
	}
	t := (y - origin[1]) / dir[1]
	if t < 0 {
		return mgl32.Vec3{}, 0, false
	}
	return origin.Add(dir.Mul(t)), t, true
}
