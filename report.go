package arspawn

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
)

// PlacementRecord is one placement or relocation seen during a session.
type PlacementRecord struct {
	Time      float32    `yaml:"time"`
	ID        uint64     `yaml:"id"`
	Name      string     `yaml:"name"`
	Position  mgl32.Vec3 `yaml:"position"`
	Rotation  mgl32.Quat `yaml:"rotation"`
	Scale     float32    `yaml:"scale"`
	Color     mgl32.Vec4 `yaml:"color"`
	Grounded  bool       `yaml:"grounded"`
	Relocated bool       `yaml:"relocated,omitempty"`
	Marker    bool       `yaml:"marker,omitempty"`
	Detached  bool       `yaml:"detached"`
}

type RemovalRecord struct {
	Time float32 `yaml:"time"`
	ID   uint64  `yaml:"id"`
	Name string  `yaml:"name"`
}

// Report summarizes a played back session.
type Report struct {
	Session    string            `yaml:"session"`
	Frames     int               `yaml:"frames"`
	Duration   float32           `yaml:"duration"`
	State      string            `yaml:"state"`
	Placements []PlacementRecord `yaml:"placements"`
	Removals   []RemovalRecord   `yaml:"removals"`
	// Live lists the ids still in the scene when the session ended.
	Live        []uint64     `yaml:"live"`
	CameraTrack []mgl32.Vec3 `yaml:"camera_track"`
}

// Recorder listens to placement messages and samples the camera every frame.
type Recorder struct {
	Camera  CameraSource
	Mailbox *engo.MessageManager

	time   float32
	frames int
	report Report
}

func (r *Recorder) New(*ecs.World) {
	if r.Mailbox == nil {
		r.Mailbox = engo.Mailbox
	}
	if r.Mailbox == nil {
		return
	}
	r.Mailbox.Listen(PlacedMessage{}.Type(), func(msg engo.Message) {
		pm, ok := msg.(PlacedMessage)
		if !ok {
			return
		}
		r.report.Placements = append(r.report.Placements, PlacementRecord{
			Time:      r.time,
			ID:        pm.Entity.GetBasicEntity().ID(),
			Name:      pm.Entity.Name(),
			Position:  pm.Pose.Position,
			Rotation:  pm.Pose.Rotation,
			Scale:     pm.Entity.Scale()[0],
			Color:     entityColor(pm.Entity),
			Grounded:  pm.Grounded,
			Relocated: pm.Relocated,
			Marker:    pm.Marker,
			Detached:  pm.Entity.Parent() == nil,
		})
	})
	r.Mailbox.Listen(RemovedMessage{}.Type(), func(msg engo.Message) {
		rm, ok := msg.(RemovedMessage)
		if !ok {
			return
		}
		r.report.Removals = append(r.report.Removals, RemovalRecord{Time: r.time, ID: rm.ID, Name: rm.Name})
	})
}

// The recorder samples after every other system has run.
func (*Recorder) Priority() int { return -100 }

func (*Recorder) Remove(ecs.BasicEntity) {}

func (r *Recorder) Update(dt float32) {
	r.time += dt
	r.frames++
	if r.Camera == nil {
		return
	}
	if cam, ok := r.Camera.CameraPose(); ok {
		track := r.report.CameraTrack
		if len(track) == 0 || track[len(track)-1] != cam.Position {
			r.report.CameraTrack = append(track, cam.Position)
		}
	}
}

// Report returns what was recorded so far.
func (r *Recorder) Report() Report {
	rep := r.report
	rep.Frames = r.frames
	rep.Duration = r.time
	return rep
}

// entityColor is the first base or legacy color found on e, white if there is none.
func entityColor(e Entity) mgl32.Vec4 {
	for _, rend := range e.Renderers() {
		for _, mat := range rend.Materials() {
			if c, ok := mat.Color(PropBaseColor); ok {
				return c
			}
			if c, ok := mat.Color(PropColor); ok {
				return c
			}
		}
	}
	return mgl32.Vec4{1, 1, 1, 1}
}
