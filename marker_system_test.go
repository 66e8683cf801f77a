package arspawn

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarker(t *testing.T, cam CameraSource) (*MarkerSystem, *Scene, *test.Hook, *[]PlacedMessage) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	scene := NewScene()
	scene.DefaultParent = NewNode("AR Camera", IdentityPose())
	mb := &engo.MessageManager{}
	var placed []PlacedMessage
	mb.Listen(PlacedMessage{}.Type(), func(msg engo.Message) {
		placed = append(placed, msg.(PlacedMessage))
	})

	cfg := DefaultMarkerConfig()
	cfg.Enabled = true
	ms := &MarkerSystem{Config: cfg, Camera: cam, Instantiator: scene, Mailbox: mb, Log: logrus.NewEntry(logger)}
	ms.New(&ecs.World{})
	return ms, scene, hook, &placed
}

func TestMarkerSystem(t *testing.T) {
	cam := &fakeCamera{pose: CameraPose{Position: mgl32.Vec3{1, 1.5, 0}, Forward: mgl32.Vec3{0, -0.6, 0.8}}, ok: true}
	ms, scene, _, placed := newMarker(t, cam)

	ms.Update(0.5)
	assert.Nil(t, ms.Marker())
	ms.Update(0.5)
	require.NotNil(t, ms.Marker())

	m := ms.Marker()
	assert.Equal(t, "AR Test Cube", m.Name())
	assert.Nil(t, m.Parent())
	assert.Equal(t, mgl32.Vec3{0.3, 0.3, 0.3}, m.Scale())
	// follows the full forward for XZ but ignores its pitch for height
	assertVec3InDelta(t, mgl32.Vec3{1, 1, 1.6}, m.Pose().Position, 1e-6)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, entityColor(m))

	require.Len(t, *placed, 1)
	assert.True(t, (*placed)[0].Marker)

	ms.Update(5)
	assert.Equal(t, 1, scene.Len(), "only one marker per session")
	assert.Len(t, *placed, 1)
}

func TestMarkerSystemDisabled(t *testing.T) {
	cam := &fakeCamera{pose: CameraPose{Forward: DefaultForward}, ok: true}
	ms, scene, _, _ := newMarker(t, cam)
	ms.Config.Enabled = false

	ms.Update(10)
	assert.Nil(t, ms.Marker())
	assert.Equal(t, 0, scene.Len())
}

func TestMarkerSystemWithoutCamera(t *testing.T) {
	ms, scene, hook, _ := newMarker(t, &fakeCamera{})

	ms.Update(1)
	ms.Update(1)
	assert.Nil(t, ms.Marker())
	assert.Equal(t, 0, scene.Len())
	require.Len(t, hook.AllEntries(), 1, "the marker gives up after one try")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
