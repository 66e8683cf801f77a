package arspawn

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects how a placement is triggered.
type Mode string

const (
	// ModeAuto places once when tracking is ready and the start delay has passed.
	ModeAuto Mode = "auto"
	// ModeTap places where the user taps on a detected surface.
	ModeTap Mode = "tap"
)

// TapPolicy decides what later taps do once something has been placed.
type TapPolicy string

const (
	// TapPlaceOnce ignores every tap after the first successful placement.
	TapPlaceOnce TapPolicy = "once"
	// TapRelocate moves the single placed instance to each new hit.
	TapRelocate TapPolicy = "relocate"
)

// DefaultHeuristicDrop is how far below the camera the floor is assumed to be when no
// surface was found.
const DefaultHeuristicDrop float32 = 1.5

// PlacementConfig is fixed when the placement system is set up.
type PlacementConfig struct {
	Mode      Mode      `yaml:"mode"`
	TapPolicy TapPolicy `yaml:"tap_policy"`

	SpawnDistance float32 `yaml:"spawn_distance"`
	FloorOffset   float32 `yaml:"floor_offset"`
	HeuristicDrop float32 `yaml:"heuristic_drop"`
	// MinSpawnDelay is in seconds.
	MinSpawnDelay float32 `yaml:"min_spawn_delay"`
	PlaceOnFloor  bool    `yaml:"place_on_floor"`

	Scale          float32    `yaml:"scale"`
	RotationOffset mgl32.Vec3 `yaml:"rotation_offset"`

	ApplyColorOverride bool       `yaml:"apply_color_override"`
	OverrideColor      mgl32.Vec4 `yaml:"override_color"`
	EmissionColor      mgl32.Vec4 `yaml:"emission_color"`
}

func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		Mode:               ModeAuto,
		TapPolicy:          TapPlaceOnce,
		SpawnDistance:      2.0,
		HeuristicDrop:      DefaultHeuristicDrop,
		MinSpawnDelay:      1.0,
		PlaceOnFloor:       true,
		Scale:              1.0,
		ApplyColorOverride: true,
		OverrideColor:      mgl32.Vec4{0.6, 0.2, 1.0, 1.0},
		EmissionColor:      mgl32.Vec4{0.3, 0.1, 0.6, 1.0},
	}
}

// DefaultTapPlacementConfig places at half size and keeps the asset's own colors.
func DefaultTapPlacementConfig() PlacementConfig {
	cfg := DefaultPlacementConfig()
	cfg.Mode = ModeTap
	cfg.Scale = 0.5
	cfg.ApplyColorOverride = false
	return cfg
}

func (c PlacementConfig) Validate() error {
	switch c.Mode {
	case ModeAuto, ModeTap:
	default:
		return fmt.Errorf("placement: %w", &unknownNameError{kind: "mode", name: string(c.Mode)})
	}
	switch c.TapPolicy {
	case TapPlaceOnce, TapRelocate:
	default:
		return fmt.Errorf("placement: %w", &unknownNameError{kind: "tap policy", name: string(c.TapPolicy)})
	}
	if c.SpawnDistance < 0 {
		return fmt.Errorf("placement: spawn distance must not be negative, got %v", c.SpawnDistance)
	}
	if c.HeuristicDrop < 0 {
		return fmt.Errorf("placement: heuristic drop must not be negative, got %v", c.HeuristicDrop)
	}
	if c.MinSpawnDelay < 0 {
		return fmt.Errorf("placement: min spawn delay must not be negative, got %v", c.MinSpawnDelay)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("placement: scale must be positive, got %v", c.Scale)
	}
	return nil
}

// MarkerConfig configures the debug marker dropped in front of the camera.
type MarkerConfig struct {
	Enabled       bool       `yaml:"enabled"`
	SpawnDistance float32    `yaml:"spawn_distance"`
	Size          float32    `yaml:"size"`
	HeightOffset  float32    `yaml:"height_offset"`
	Delay         float32    `yaml:"delay"`
	Color         mgl32.Vec4 `yaml:"color"`
}

func DefaultMarkerConfig() MarkerConfig {
	return MarkerConfig{
		SpawnDistance: 2.0,
		Size:          0.3,
		HeightOffset:  -0.5,
		Delay:         1.0,
		Color:         mgl32.Vec4{1, 0, 0, 1},
	}
}
