package arspawn

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// ScriptSystem plays back session steps: it moves the camera, flips tracking and feeds
// taps and respawns into the mailbox, the way a user walking around would.
type ScriptSystem struct {
	Steps   []Step
	Camera  *ARCamera
	Mailbox *engo.MessageManager
	// OnFinish runs once after the last frame of the last step.
	OnFinish func()

	idx       int
	remaining int
	started   bool
	finished  bool
}

// Script steps run before anything reads the camera in the same frame.
func (*ScriptSystem) Priority() int { return 100 }

func (*ScriptSystem) Remove(ecs.BasicEntity) {}

func (ss *ScriptSystem) Update(dt float32) {
	if ss.idx >= len(ss.Steps) {
		if !ss.finished {
			ss.finished = true
			if ss.OnFinish != nil {
				ss.OnFinish()
			}
		}
		return
	}

	step := ss.Steps[ss.idx]
	if !ss.started {
		ss.apply(step)
		ss.remaining = step.Frames
		if ss.remaining < 1 {
			ss.remaining = 1
		}
		ss.started = true
	}

	ss.remaining--
	if ss.remaining <= 0 {
		ss.idx++
		ss.started = false
	}
}

func (ss *ScriptSystem) apply(step Step) {
	if ss.Camera != nil {
		if step.Camera != nil {
			ss.Camera.Look(step.Camera.Position, step.Camera.Forward)
		}
		if step.Tracking != nil {
			log.Debugf("Tracking state %s", *step.Tracking)
			ss.Camera.State = *step.Tracking
		}
		if step.Lost != nil {
			ss.Camera.Lost = *step.Lost
		}
	}
	if ss.Mailbox == nil {
		return
	}
	if step.Tap != nil {
		ss.Mailbox.Dispatch(TapMessage{Point: engo.Point{X: step.Tap[0], Y: step.Tap[1]}})
	}
	if step.Respawn {
		ss.Mailbox.Dispatch(RespawnMessage{})
	}
}

// NextDT is the frame time of the step about to run.
func (ss *ScriptSystem) NextDT(def float32) float32 {
	if ss.idx < len(ss.Steps) && ss.Steps[ss.idx].DT > 0 {
		return ss.Steps[ss.idx].DT
	}
	return def
}

// Done reports whether every step has been played and OnFinish has run.
func (ss *ScriptSystem) Done() bool {
	return ss.finished
}
