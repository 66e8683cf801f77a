package arspawn

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
)

// TrackingState mirrors the coarse session state reported by the AR runtime.
type TrackingState int

const (
	TrackingNone TrackingState = iota
	TrackingUnsupported
	TrackingCheckingAvailability
	TrackingNeedsInstall
	TrackingInstalling
	TrackingReady
	TrackingSessionInitializing
	TrackingSessionTracking
)

var trackingStateNames = map[TrackingState]string{
	TrackingNone:                 "None",
	TrackingUnsupported:          "Unsupported",
	TrackingCheckingAvailability: "CheckingAvailability",
	TrackingNeedsInstall:         "NeedsInstall",
	TrackingInstalling:           "Installing",
	TrackingReady:                "Ready",
	TrackingSessionInitializing:  "SessionInitializing",
	TrackingSessionTracking:      "SessionTracking",
}

func (s TrackingState) String() string {
	if name, ok := trackingStateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseTrackingState is the inverse of String.
func ParseTrackingState(name string) (TrackingState, bool) {
	for s, n := range trackingStateNames {
		if n == name {
			return s, true
		}
	}
	return TrackingNone, false
}

// MarshalText lets tracking states appear by name in session files.
func (s TrackingState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TrackingState) UnmarshalText(text []byte) error {
	parsed, ok := ParseTrackingState(string(text))
	if !ok {
		return &unknownNameError{kind: "tracking state", name: string(text)}
	}
	*s = parsed
	return nil
}

// TrackableType filters which detected surfaces a probe may hit.
type TrackableType uint8

const (
	// TrackablePlaneWithinPolygon only accepts hits inside a plane's detected boundary.
	TrackablePlaneWithinPolygon TrackableType = 1 << iota
	// TrackablePlaneWithinInfinity treats every plane as unbounded.
	TrackablePlaneWithinInfinity
)

// SurfaceHit is the best result of a surface probe.
type SurfaceHit struct {
	Pose     Pose
	Distance float32
	Type     TrackableType
}

// CameraSource reports the current camera pose. ok is false while no camera is available.
type CameraSource interface {
	CameraPose() (pose CameraPose, ok bool)
}

// TrackingSource reports whether world tracking currently produces usable poses.
type TrackingSource interface {
	TrackingState() TrackingState
}

// SurfaceProbe casts into the tracked environment and returns zero or one hit.
type SurfaceProbe interface {
	Raycast(origin, dir mgl32.Vec3, filter TrackableType) (SurfaceHit, bool)
	RaycastScreen(pt engo.Point, filter TrackableType) (SurfaceHit, bool)
}

// Material is a shader property bag that may or may not expose a given property.
type Material interface {
	HasProperty(name string) bool
	Color(name string) (mgl32.Vec4, bool)
	SetColor(name string, c mgl32.Vec4)
	EnableKeyword(keyword string)
	IsKeywordEnabled(keyword string) bool
}

// Renderer draws a piece of an entity with one or more materials.
type Renderer interface {
	Materials() []Material
}

// Entity is an instantiated visual hierarchy.
type Entity interface {
	GetBasicEntity() *ecs.BasicEntity
	Name() string
	Pose() Pose
	SetPose(Pose)
	Scale() mgl32.Vec3
	SetScale(mgl32.Vec3)
	Parent() Entity
	// SetParent(nil) detaches the entity, leaving it anchored in world space.
	SetParent(Entity)
	// Renderers lists the renderers of the entity and all of its descendants.
	Renderers() []Renderer
}

// Instantiator creates and destroys entities from asset templates.
type Instantiator interface {
	Instantiate(asset *Asset, pose Pose) (Entity, error)
	Destroy(Entity)
}
