package arspawn

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// TapInputSystem turns pointer presses into TapMessages.
type TapInputSystem struct {
	// Mouse defaults to engo.Input.Mouse.
	Mouse   *engo.Mouse
	Mailbox *engo.MessageManager
	// ScreenHeight flips window coordinates (origin top left) to screen coordinates
	// (origin bottom left) when set.
	ScreenHeight float32
}

func (tis *TapInputSystem) New(*ecs.World) {
	if tis.Mouse == nil && engo.Input != nil {
		tis.Mouse = &engo.Input.Mouse
	}
	if tis.Mailbox == nil {
		tis.Mailbox = engo.Mailbox
	}
}

// Input has to be read before placement runs in the same frame.
func (*TapInputSystem) Priority() int { return 50 }

func (*TapInputSystem) Remove(ecs.BasicEntity) {}

func (tis *TapInputSystem) Update(dt float32) {
	if tis.Mouse == nil || tis.Mailbox == nil {
		return
	}
	if tis.Mouse.Action != engo.Press {
		return
	}
	pt := engo.Point{X: tis.Mouse.X, Y: tis.Mouse.Y}
	if tis.ScreenHeight > 0 {
		pt.Y = tis.ScreenHeight - pt.Y
	}
	log.Debugf("Tap at %v,%v", pt.X, pt.Y)
	tis.Mailbox.Dispatch(TapMessage{Point: pt})
}
