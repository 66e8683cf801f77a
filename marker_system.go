package arspawn

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

const markerShader = "Universal Render Pipeline/Lit"

// MarkerAsset is a plain colored cube.
func MarkerAsset(c mgl32.Vec4) *Asset {
	return &Asset{
		Name: "AR Test Cube",
		Renderers: []RendererAsset{{
			Name: "Cube",
			Materials: []MaterialAsset{{
				Shader: markerShader,
				Colors: map[string]mgl32.Vec4{PropBaseColor: c, PropColor: c},
			}},
		}},
	}
}

// MarkerSystem drops one debug cube in front of the camera after a delay, to check where
// the camera thinks "in front" is. Unlike placements it follows the full camera forward
// and sits at a fixed offset from camera height.
type MarkerSystem struct {
	Config       MarkerConfig
	Camera       CameraSource
	Instantiator Instantiator
	Mailbox      *engo.MessageManager
	Log          *logrus.Entry

	elapsed float32
	done    bool
	marker  Entity
}

func (ms *MarkerSystem) New(*ecs.World) {
	ms.Log = entryOr(ms.Log, "marker")
	if ms.Mailbox == nil {
		ms.Mailbox = engo.Mailbox
	}
}

func (*MarkerSystem) Remove(ecs.BasicEntity) {}

func (ms *MarkerSystem) Update(dt float32) {
	if ms.done || !ms.Config.Enabled {
		return
	}
	ms.elapsed += dt
	if ms.elapsed < ms.Config.Delay {
		return
	}
	ms.done = true
	ms.spawn()
}

func (ms *MarkerSystem) spawn() {
	l := entryOr(ms.Log, "marker")
	if ms.Camera == nil || ms.Instantiator == nil {
		l.Error("No main camera found")
		return
	}
	cam, ok := ms.Camera.CameraPose()
	if !ok {
		l.Error("No main camera found")
		return
	}

	pos := cam.Position.Add(cam.Forward.Mul(ms.Config.SpawnDistance))
	pos[1] = cam.Position[1] + ms.Config.HeightOffset

	e, err := ms.Instantiator.Instantiate(MarkerAsset(ms.Config.Color), Pose{Position: pos, Rotation: mgl32.QuatIdent()})
	if err != nil {
		l.WithError(err).Error("Unable to spawn marker")
		return
	}
	s := ms.Config.Size
	e.SetScale(mgl32.Vec3{s, s, s})
	e.SetParent(nil)
	ms.marker = e

	l.WithField("position", pos).Info("Test cube spawned")
	if ms.Mailbox != nil {
		ms.Mailbox.Dispatch(PlacedMessage{Entity: e, Pose: e.Pose(), Marker: true})
	}
}

func (ms *MarkerSystem) Marker() Entity {
	return ms.marker
}
