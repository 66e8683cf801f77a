package arspawn

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// CameraStep moves the camera.
type CameraStep struct {
	Position mgl32.Vec3 `yaml:"position"`
	Forward  mgl32.Vec3 `yaml:"forward"`
}

// Step is one scripted moment of an AR session. Its events apply on the first of its
// frames, then the script waits out the remaining frames.
type Step struct {
	// DT overrides the session frame time, in seconds.
	DT     float32 `yaml:"dt,omitempty"`
	Frames int     `yaml:"frames,omitempty"`

	Camera   *CameraStep    `yaml:"camera,omitempty"`
	Tracking *TrackingState `yaml:"tracking,omitempty"`
	Lost     *bool          `yaml:"lost,omitempty"`
	// Tap is a screen point, origin bottom left.
	Tap     *mgl32.Vec2 `yaml:"tap,omitempty"`
	Respawn bool        `yaml:"respawn,omitempty"`
}

// Session describes a replayable AR session: the placement setup, the detected world and
// a script of camera moves and user input.
type Session struct {
	Name string `yaml:"name"`

	Placement PlacementConfig `yaml:"placement"`
	Marker    MarkerConfig    `yaml:"marker"`
	Camera    Intrinsics      `yaml:"camera"`
	Asset     *Asset          `yaml:"asset"`
	Planes    []Plane         `yaml:"planes"`

	Start    CameraStep    `yaml:"start"`
	Tracking TrackingState `yaml:"tracking"`
	// NoTracking runs without a tracking source, so placement only waits for its delay.
	NoTracking bool `yaml:"no_tracking"`
	// NoProbe runs without surface detection.
	NoProbe bool `yaml:"no_probe"`

	FrameDT float32 `yaml:"frame_dt"`
	Steps   []Step  `yaml:"steps"`
}

// DefaultSession is what every session file is decoded on top of. Sessions in tap mode use
// DefaultTapPlacementConfig instead of the auto placement defaults.
func DefaultSession() Session {
	return Session{
		Name:      "session",
		Placement: DefaultPlacementConfig(),
		Marker:    DefaultMarkerConfig(),
		Camera:    DefaultIntrinsics(),
		Start: CameraStep{
			Position: mgl32.Vec3{0, 1.6, 0},
			Forward:  DefaultForward,
		},
		Tracking: TrackingSessionTracking,
		FrameDT:  1.0 / 30,
	}
}

func ParseSession(data []byte) (*Session, error) {
	s := DefaultSession()

	// tap sessions start from the tap defaults, so the mode is read first
	var head struct {
		Placement struct {
			Mode Mode `yaml:"mode"`
		} `yaml:"placement"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if head.Placement.Mode == ModeTap {
		s.Placement = DefaultTapPlacementConfig()
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}
	s, err := ParseSession(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Session) Validate() error {
	if err := s.Placement.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if s.FrameDT <= 0 {
		return errors.New("session: frame_dt must be positive")
	}
	for i, st := range s.Steps {
		if st.DT < 0 {
			return fmt.Errorf("session: step %d: dt must not be negative", i)
		}
		if st.Frames < 0 {
			return fmt.Errorf("session: step %d: frames must not be negative", i)
		}
	}
	return nil
}
