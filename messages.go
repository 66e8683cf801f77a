package arspawn

import (
	"github.com/EngoEngine/engo"
)

// TapMessage is a pointer or touch that just began at a screen coordinate.
type TapMessage struct {
	Point engo.Point
}

func (TapMessage) Type() string {
	return "TapMessage"
}

// RespawnMessage asks placement systems to drop their instance and arm again.
type RespawnMessage struct{}

func (RespawnMessage) Type() string {
	return "RespawnMessage"
}

// PlacedMessage is dispatched after an entity was placed or relocated.
type PlacedMessage struct {
	Entity    Entity
	Pose      Pose
	Grounded  bool
	Relocated bool
	Marker    bool
}

func (PlacedMessage) Type() string {
	return "PlacedMessage"
}

// RemovedMessage is dispatched after a placed entity was destroyed.
type RemovedMessage struct {
	ID   uint64
	Name string
}

func (RemovedMessage) Type() string {
	return "RemovedMessage"
}
