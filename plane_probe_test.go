package arspawn

import (
	"fmt"
	"testing"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneContains(t *testing.T) {
	p := Plane{Center: mgl32.Vec3{0, 0, 2}, Extents: mgl32.Vec2{1, 0.5}, Yaw: 90}

	var tests = []struct {
		pt   mgl32.Vec3
		want bool
	}{
		{mgl32.Vec3{0, 0, 2}, true},
		// rotated by 90 degrees the long side runs along Z
		{mgl32.Vec3{0, 0, 2.9}, true},
		{mgl32.Vec3{0.9, 0, 2}, false},
		{mgl32.Vec3{0.4, 5, 2}, true},
		{mgl32.Vec3{0, 0, 3.1}, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.pt), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Contains(tt.pt))
		})
	}
}

func TestPlaneProbeRaycast(t *testing.T) {
	floor := Plane{Center: mgl32.Vec3{0, 0, 2}, Extents: mgl32.Vec2{1, 1}, Yaw: 30}
	table := Plane{Center: mgl32.Vec3{0, 0.8, 2}, Extents: mgl32.Vec2{0.3, 0.3}}
	pp := &PlaneProbe{Planes: []Plane{floor, table}}
	down := mgl32.Vec3{0, -1, 0}

	hit, ok := pp.Raycast(mgl32.Vec3{0, 1.6, 2}, down, TrackablePlaneWithinPolygon)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0.8, 2}, hit.Pose.Position, "nearest plane wins")
	assert.Equal(t, TrackablePlaneWithinPolygon, hit.Type)

	hit, ok = pp.Raycast(mgl32.Vec3{0.5, 1.6, 2}, down, TrackablePlaneWithinPolygon)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.5, 0, 2}, hit.Pose.Position)
	assert.InDelta(t, 1.6, hit.Distance, 1e-6)
	assertVec3InDelta(t, floor.Rotation().Rotate(DefaultForward), hit.Pose.Rotation.Rotate(DefaultForward), 1e-6)

	_, ok = pp.Raycast(mgl32.Vec3{5, 1.6, 5}, down, TrackablePlaneWithinPolygon)
	assert.False(t, ok, "outside every boundary")

	hit, ok = pp.Raycast(mgl32.Vec3{5, 1.6, 5}, down, TrackablePlaneWithinInfinity)
	require.True(t, ok)
	assert.Equal(t, TrackablePlaneWithinInfinity, hit.Type)
	assert.Equal(t, float32(0.8), hit.Pose.Position[1])

	_, ok = pp.Raycast(mgl32.Vec3{0, 1.6, 2}, mgl32.Vec3{0, 1, 0}, TrackablePlaneWithinInfinity)
	assert.False(t, ok)
	_, ok = pp.Raycast(mgl32.Vec3{0, 1.6, 2}, mgl32.Vec3{}, TrackablePlaneWithinInfinity)
	assert.False(t, ok)
}

func TestPlaneProbeRaycastScreen(t *testing.T) {
	cam := NewARCamera(Intrinsics{FOV: 60, Width: 1000, Height: 1000})
	cam.Look(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 1})
	pp := &PlaneProbe{Planes: []Plane{{Center: mgl32.Vec3{0, 0, 1}, Extents: mgl32.Vec2{2, 2}}}}

	_, ok := pp.RaycastScreen(engo.Point{X: 500, Y: 500}, TrackablePlaneWithinPolygon)
	assert.False(t, ok, "no camera attached")

	pp.Camera = cam
	hit, ok := pp.RaycastScreen(engo.Point{X: 500, Y: 500}, TrackablePlaneWithinPolygon)
	require.True(t, ok)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 1}, hit.Pose.Position, 1e-5)

	right, ok := pp.RaycastScreen(engo.Point{X: 900, Y: 500}, TrackablePlaneWithinPolygon)
	require.True(t, ok)
	assert.Greater(t, right.Pose.Position[0], float32(0))
	below, ok := pp.RaycastScreen(engo.Point{X: 500, Y: 100}, TrackablePlaneWithinPolygon)
	require.True(t, ok)
	assert.Less(t, below.Pose.Position[2], float32(1), "lower on screen is closer to the camera")
}

func TestARCamera(t *testing.T) {
	cam := NewARCamera(DefaultIntrinsics())
	cam.Look(mgl32.Vec3{1, 1.5, 0}, mgl32.Vec3{1, 0, 0})

	pose, ok := cam.CameraPose()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 1.5, 0}, pose.Position)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, pose.Forward, 1e-6)
	assert.Equal(t, pose.Position, cam.Rig.Pose().Position)

	origin, dir := cam.ScreenRay(engo.Point{X: cam.Width / 2, Y: cam.Height / 2})
	assert.Equal(t, pose.Position, origin)
	assertVec3InDelta(t, pose.Forward, dir, 1e-6)

	cam.Lost = true
	_, ok = cam.CameraPose()
	assert.False(t, ok)

	var nilCam *ARCamera
	_, ok = nilCam.CameraPose()
	assert.False(t, ok)
}
