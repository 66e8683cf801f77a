package arspawn

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// Runtime wires one session into an ecs.World.
type Runtime struct {
	Session *Session

	World   *ecs.World
	Mailbox *engo.MessageManager
	Scene   *Scene
	Camera  *ARCamera
	Probe   *PlaneProbe

	Script    *ScriptSystem
	Input     *TapInputSystem
	Placement *PlacementSystem
	Marker    *MarkerSystem
	Recorder  *Recorder
}

// NewRuntime adds the session's systems to w. A nil mailbox gets a private one.
func NewRuntime(s *Session, w *ecs.World, mb *engo.MessageManager) *Runtime {
	if mb == nil {
		mb = &engo.MessageManager{}
	}
	rt := &Runtime{
		Session: s,
		World:   w,
		Mailbox: mb,
		Scene:   NewScene(),
		Camera:  NewARCamera(s.Camera),
	}
	rt.Camera.State = s.Tracking
	rt.Camera.Look(s.Start.Position, s.Start.Forward)
	rt.Scene.Add(rt.Camera.Rig)
	// Instances are created under the camera rig and must be detached by whoever places them.
	rt.Scene.DefaultParent = rt.Camera.Rig

	rt.Probe = &PlaneProbe{Planes: s.Planes, Camera: rt.Camera}

	rt.Script = &ScriptSystem{Steps: s.Steps, Camera: rt.Camera, Mailbox: mb}
	rt.Placement = &PlacementSystem{
		Config:       s.Placement,
		Asset:        s.Asset,
		Camera:       rt.Camera,
		Instantiator: rt.Scene,
		Mailbox:      mb,
	}
	if !s.NoTracking {
		rt.Placement.Tracking = rt.Camera
	}
	if !s.NoProbe {
		rt.Placement.Probe = rt.Probe
	}
	rt.Marker = &MarkerSystem{Config: s.Marker, Camera: rt.Camera, Instantiator: rt.Scene, Mailbox: mb}
	rt.Recorder = &Recorder{Camera: rt.Camera, Mailbox: mb}

	w.AddSystem(rt.Script)
	w.AddSystem(rt.Placement)
	w.AddSystem(rt.Marker)
	w.AddSystem(rt.Recorder)
	return rt
}

// AddTapInput feeds pointer presses into the session's mailbox. Window coordinates are
// flipped using the session's screen height. A nil mouse means engo.Input.Mouse.
func (rt *Runtime) AddTapInput(mouse *engo.Mouse) *TapInputSystem {
	rt.Input = &TapInputSystem{Mouse: mouse, Mailbox: rt.Mailbox, ScreenHeight: rt.Session.Camera.Height}
	rt.World.AddSystem(rt.Input)
	return rt.Input
}

// Report is the recording plus the final scene state.
func (rt *Runtime) Report() Report {
	rep := rt.Recorder.Report()
	rep.Session = rt.Session.Name
	rep.State = rt.Placement.State().String()
	for _, n := range rt.Scene.Roots() {
		if n == rt.Camera.Rig {
			continue
		}
		rep.Live = append(rep.Live, n.ID())
	}
	// children of the rig are placements that were never detached
	for _, n := range rt.Camera.Rig.Children() {
		rep.Live = append(rep.Live, n.ID())
	}
	return rep
}

// Run plays a session frame by frame as fast as possible.
func Run(s *Session) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}
	rt := NewRuntime(s, &ecs.World{}, nil)
	log.WithField("session", s.Name).Infof("Playing %d steps", len(s.Steps))
	for !rt.Script.Done() {
		rt.World.Update(rt.Script.NextDT(s.FrameDT))
	}
	return rt.Report(), nil
}

// SimScene plays a session inside engo's own loop and exits when the script ends.
type SimScene struct {
	Session *Session

	rt *Runtime
}

func (*SimScene) Preload() {}

func (ss *SimScene) Setup(u engo.Updater) {
	w, _ := u.(*ecs.World)
	ss.rt = NewRuntime(ss.Session, w, engo.Mailbox)
	ss.rt.AddTapInput(nil)
	ss.rt.Script.OnFinish = func() {
		log.WithField("session", ss.Session.Name).Info("Session finished")
		engo.Exit()
	}
}

func (*SimScene) Type() string { return "Sim" }

// Report is only meaningful after engo.Run returned.
func (ss *SimScene) Report() Report {
	if ss.rt == nil {
		return Report{Session: ss.Session.Name}
	}
	return ss.rt.Report()
}
