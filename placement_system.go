package arspawn

import (
	"errors"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// PlacementState is Idle until something was placed.
type PlacementState int

const (
	StateIdle PlacementState = iota
	StatePlaced
)

func (s PlacementState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaced:
		return "Placed"
	}
	return "Unknown"
}

// PlacementSystem anchors a single entity in the world, either on its own once tracking is
// ready (ModeAuto) or where the user taps (ModeTap). It is driven by the frame loop and is
// not safe for use from more than one goroutine.
type PlacementSystem struct {
	Config PlacementConfig
	Asset  *Asset

	Camera       CameraSource
	Tracking     TrackingSource
	Probe        SurfaceProbe
	Instantiator Instantiator

	// Mailbox defaults to engo.Mailbox.
	Mailbox *engo.MessageManager
	Log     *logrus.Entry

	placed     Entity
	hasSpawned bool
	elapsed    float32
	lastErr    error

	tapID     engo.MessageHandlerId
	respawnID engo.MessageHandlerId
	listening bool
}

func (ps *PlacementSystem) New(w *ecs.World) {
	ps.Log = entryOr(ps.Log, "placement").WithField("mode", ps.Config.Mode)
	if ps.Mailbox == nil {
		ps.Mailbox = engo.Mailbox
	}

	if ps.Config.Mode == ModeAuto && ps.Tracking == nil {
		ps.Log.Warn("No tracking source, spawning after the start delay only")
	}
	if ps.Config.PlaceOnFloor && ps.Probe == nil {
		ps.Log.Debug("No surface probe, floor placement falls back to the height estimate")
	}

	if ps.Mailbox == nil {
		return
	}
	ps.tapID = ps.Mailbox.Listen(TapMessage{}.Type(), func(msg engo.Message) {
		tm, ok := msg.(TapMessage)
		if !ok {
			return
		}
		ps.Tap(tm.Point)
	})
	ps.respawnID = ps.Mailbox.Listen(RespawnMessage{}.Type(), func(engo.Message) {
		ps.Respawn()
	})
	ps.listening = true
}

func (*PlacementSystem) Priority() int { return 0 }

// Remove forgets the placed entity when it is removed from the world by someone else.
func (ps *PlacementSystem) Remove(e ecs.BasicEntity) {
	if ps.placed != nil && ps.placed.GetBasicEntity().ID() == e.ID() {
		ps.placed = nil
	}
}

func (ps *PlacementSystem) Update(dt float32) {
	if ps.Config.Mode != ModeAuto || ps.hasSpawned {
		return
	}

	ps.elapsed += dt
	if ps.elapsed < ps.Config.MinSpawnDelay {
		return
	}
	if ps.Tracking != nil && ps.Tracking.TrackingState() != TrackingSessionTracking {
		return
	}

	if err := ps.Spawn(); err != nil {
		ps.report(err)
	}
}

func (ps *PlacementSystem) report(err error) {
	// wrapped errors are new values every frame, so compare by message
	if ps.lastErr != nil && ps.lastErr.Error() == err.Error() {
		return
	}
	ps.lastErr = err
	if errors.Is(err, ErrAlreadySpawned) {
		return
	}
	ps.logger().WithError(err).Error("Unable to spawn")
}

func (ps *PlacementSystem) logger() *logrus.Entry {
	if ps.Log == nil {
		ps.Log = entryOr(nil, "placement").WithField("mode", ps.Config.Mode)
	}
	return ps.Log
}

// Spawn places the asset in front of the camera. Calling it again while something is
// placed returns ErrAlreadySpawned and changes nothing.
func (ps *PlacementSystem) Spawn() error {
	if ps.placed != nil || ps.hasSpawned {
		ps.logger().Warn("Object already spawned")
		return ErrAlreadySpawned
	}
	if ps.Camera == nil {
		return ErrNoCamera
	}
	cam, ok := ps.Camera.CameraPose()
	if !ok {
		return ErrNoCamera
	}
	if ps.Asset == nil {
		return ErrNoAsset
	}
	if ps.Instantiator == nil {
		return ErrNoInstantiator
	}

	pose, grounded := ps.SpawnPose(cam)
	e, err := ps.Instantiator.Instantiate(ps.Asset, pose)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", ps.Asset.Name, err)
	}
	ps.adopt(e)
	ps.hasSpawned = true
	ps.lastErr = nil

	ps.logger().WithFields(logrus.Fields{
		"id":       e.GetBasicEntity().ID(),
		"position": pose.Position,
		"grounded": grounded,
	}).Infof("Auto-spawned %s", ps.Asset.Name)
	ps.dispatch(PlacedMessage{Entity: e, Pose: pose, Grounded: grounded})
	return nil
}

// SpawnPose computes where an automatic spawn would go for the given camera pose. grounded
// reports whether a detected surface was used.
func (ps *PlacementSystem) SpawnPose(cam CameraPose) (pose Pose, grounded bool) {
	fwd := HorizontalForward(cam.Forward)
	pos := cam.Position.Add(fwd.Mul(ps.Config.SpawnDistance))
	estimatedY := cam.Position[1] - ps.Config.HeuristicDrop + ps.Config.FloorOffset

	if ps.Config.PlaceOnFloor && ps.Probe != nil {
		origin := mgl32.Vec3{pos[0], cam.Position[1], pos[2]}
		if hit, ok := ps.Probe.Raycast(origin, mgl32.Vec3{0, -1, 0}, TrackablePlaneWithinPolygon); ok {
			pos = hit.Pose.Position
			pos[1] += ps.Config.FloorOffset
			grounded = true
		} else {
			pos[1] = estimatedY
			ps.logger().Warn("No floor detected, using estimated position")
		}
	} else {
		pos[1] = estimatedY
	}

	rot := LookRotation(fwd, WorldUp).Mul(EulerRotation(ps.Config.RotationOffset))
	return Pose{Position: pos, Rotation: rot}, grounded
}

// Tap places on the surface under the screen point. It reports whether anything was placed
// or moved. Misses are ignored.
func (ps *PlacementSystem) Tap(pt engo.Point) bool {
	if ps.Config.Mode != ModeTap {
		return false
	}
	if ps.placed != nil && ps.Config.TapPolicy == TapPlaceOnce {
		return false
	}
	if ps.Probe == nil {
		return false
	}
	hit, ok := ps.Probe.RaycastScreen(pt, TrackablePlaneWithinPolygon)
	if !ok {
		return false
	}

	if ps.placed != nil {
		ps.placed.SetPose(hit.Pose)
		ps.logger().WithField("position", hit.Pose.Position).Debugf("Moved %s", ps.placed.Name())
		ps.dispatch(PlacedMessage{Entity: ps.placed, Pose: hit.Pose, Grounded: true, Relocated: true})
		return true
	}

	if ps.Asset == nil {
		ps.report(ErrNoAsset)
		return false
	}
	if ps.Instantiator == nil {
		ps.report(ErrNoInstantiator)
		return false
	}
	e, err := ps.Instantiator.Instantiate(ps.Asset, hit.Pose)
	if err != nil {
		ps.report(fmt.Errorf("spawn %s: %w", ps.Asset.Name, err))
		return false
	}
	ps.adopt(e)
	ps.hasSpawned = true
	ps.lastErr = nil

	ps.logger().WithField("position", hit.Pose.Position).Infof("Spawned %s", ps.Asset.Name)
	ps.dispatch(PlacedMessage{Entity: e, Pose: hit.Pose, Grounded: true})
	return true
}

// adopt finishes a fresh instance: scale, world anchoring and the color override.
func (ps *PlacementSystem) adopt(e Entity) {
	s := ps.Config.Scale
	e.SetScale(mgl32.Vec3{s, s, s})
	e.SetParent(nil)

	if ps.Config.ApplyColorOverride {
		n := ApplyColorOverride(e, ps.Config.OverrideColor, ps.Config.EmissionColor)
		ps.logger().Debugf("Applied color override to %d materials of %s", n, e.Name())
	}
	ps.placed = e
}

// Respawn destroys the current instance and arms the automatic trigger again.
func (ps *PlacementSystem) Respawn() {
	ps.destroyPlaced()
	ps.hasSpawned = false
	ps.elapsed = 0
	ps.lastErr = nil
}

func (ps *PlacementSystem) destroyPlaced() {
	if ps.placed == nil {
		return
	}
	e := ps.placed
	ps.placed = nil
	if ps.Instantiator != nil {
		ps.Instantiator.Destroy(e)
	}
	ps.logger().Debugf("Destroyed %s", e.Name())
	ps.dispatch(RemovedMessage{ID: e.GetBasicEntity().ID(), Name: e.Name()})
}

// Close destroys the placed entity and stops listening for messages.
func (ps *PlacementSystem) Close() {
	ps.destroyPlaced()
	if ps.listening && ps.Mailbox != nil {
		ps.Mailbox.StopListen(TapMessage{}.Type(), ps.tapID)
		ps.Mailbox.StopListen(RespawnMessage{}.Type(), ps.respawnID)
		ps.listening = false
	}
}

func (ps *PlacementSystem) dispatch(msg engo.Message) {
	if ps.Mailbox != nil {
		ps.Mailbox.Dispatch(msg)
	}
}

func (ps *PlacementSystem) State() PlacementState {
	if ps.hasSpawned {
		return StatePlaced
	}
	return StateIdle
}

// Placed returns the live instance, or nil.
func (ps *PlacementSystem) Placed() Entity {
	return ps.placed
}
