package arspawn

import (
	"math"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
)

// Intrinsics describe the camera projection onto the device screen.
type Intrinsics struct {
	// FOV is the vertical field of view in degrees.
	FOV    float32 `yaml:"fov"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

func DefaultIntrinsics() Intrinsics {
	return Intrinsics{FOV: 60, Width: 1170, Height: 2532}
}

// ARCamera is the device camera as the AR session tracks it. It is both the camera pose
// and the tracking state source.
type ARCamera struct {
	Intrinsics

	Position mgl32.Vec3
	Rotation mgl32.Quat
	State    TrackingState
	// Lost makes CameraPose report no camera.
	Lost bool

	// Rig is the camera transform in the scene graph and follows Look.
	Rig *Node
}

func NewARCamera(in Intrinsics) *ARCamera {
	c := &ARCamera{
		Intrinsics: in,
		Rotation:   mgl32.QuatIdent(),
		Rig:        NewNode("AR Camera", IdentityPose()),
	}
	return c
}

// Look moves the camera to position facing forward.
func (c *ARCamera) Look(position, forward mgl32.Vec3) {
	c.Position = position
	c.Rotation = LookRotation(forward, WorldUp)
	if c.Rig != nil {
		c.Rig.SetPose(Pose{Position: c.Position, Rotation: c.Rotation})
	}
}

func (c *ARCamera) Forward() mgl32.Vec3 {
	return c.Rotation.Rotate(DefaultForward)
}

func (c *ARCamera) CameraPose() (CameraPose, bool) {
	if c == nil || c.Lost {
		return CameraPose{}, false
	}
	return CameraPose{Position: c.Position, Forward: c.Forward()}, true
}

func (c *ARCamera) TrackingState() TrackingState {
	return c.State
}

// ScreenRay returns the world ray through a screen point. Screen coordinates start at the
// bottom left corner.
func (c *ARCamera) ScreenRay(pt engo.Point) (origin, dir mgl32.Vec3) {
	w, h := c.Width, c.Height
	if w <= 0 || h <= 0 {
		return c.Position, c.Forward()
	}
	ndcX := 2*pt.X/w - 1
	ndcY := 2*pt.Y/h - 1
	tanHalf := float32(math.Tan(float64(mgl32.DegToRad(c.FOV) / 2)))

	local := mgl32.Vec3{ndcX * tanHalf * (w / h), ndcY * tanHalf, 1}
	return c.Position, c.Rotation.Rotate(local).Normalize()
}
