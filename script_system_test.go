package arspawn

import (
	"testing"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptSystem(t *testing.T) {
	tracking := TrackingSessionTracking
	lost := true
	tap := mgl32.Vec2{3, 4}

	cam := NewARCamera(DefaultIntrinsics())
	mb := &engo.MessageManager{}
	var taps []engo.Point
	respawns := 0
	mb.Listen(TapMessage{}.Type(), func(msg engo.Message) {
		taps = append(taps, msg.(TapMessage).Point)
	})
	mb.Listen(RespawnMessage{}.Type(), func(engo.Message) { respawns++ })

	finished := 0
	ss := &ScriptSystem{
		Steps: []Step{
			{Frames: 2, Tracking: &tracking, DT: 0.5},
			{Camera: &CameraStep{Position: mgl32.Vec3{1, 2, 3}, Forward: mgl32.Vec3{1, 0, 0}}, Tap: &tap},
			{Lost: &lost, Respawn: true, Frames: 3},
		},
		Camera:   cam,
		Mailbox:  mb,
		OnFinish: func() { finished++ },
	}

	assert.Equal(t, float32(0.5), ss.NextDT(0.1))
	ss.Update(0.5)
	assert.Equal(t, TrackingSessionTracking, cam.State)
	ss.Update(0.5)
	assert.Equal(t, float32(0.1), ss.NextDT(0.1), "step without dt uses the default")

	ss.Update(0.1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, cam.Forward(), 1e-5)
	require.Len(t, taps, 1)
	assert.Equal(t, engo.Point{X: 3, Y: 4}, taps[0])

	for i := 0; i < 3; i++ {
		ss.Update(0.1)
	}
	assert.True(t, cam.Lost)
	assert.Equal(t, 1, respawns, "events apply on the first frame of a step only")
	assert.False(t, ss.Done())

	ss.Update(0.1)
	ss.Update(0.1)
	assert.True(t, ss.Done())
	assert.Equal(t, 1, finished)
	assert.Len(t, taps, 1)
}

func TestScriptSystemEmpty(t *testing.T) {
	ss := &ScriptSystem{}
	ss.Update(1)
	assert.True(t, ss.Done())
	assert.Equal(t, float32(0.2), ss.NextDT(0.2))
}
