package arspawn

import (
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a detected horizontal surface bounded by a rectangle.
type Plane struct {
	Center mgl32.Vec3 `yaml:"center"`
	// Extents are the half sizes along the plane's local X and Z axes.
	Extents mgl32.Vec2 `yaml:"extents"`
	// Yaw is in degrees around world up.
	Yaw float32 `yaml:"yaw"`
}

func (p Plane) Rotation() mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(p.Yaw), WorldUp)
}

// Contains reports whether pt lies inside the plane boundary, ignoring height.
func (p Plane) Contains(pt mgl32.Vec3) bool {
	local := p.Rotation().Inverse().Rotate(pt.Sub(p.Center))
	return abs32(local[0]) <= p.Extents[0] && abs32(local[2]) <= p.Extents[1]
}

// Corners returns the boundary in counter clockwise order seen from above.
func (p Plane) Corners() [4]mgl32.Vec3 {
	rot := p.Rotation()
	ex, ez := p.Extents[0], p.Extents[1]
	local := [4]mgl32.Vec3{{-ex, 0, -ez}, {ex, 0, -ez}, {ex, 0, ez}, {-ex, 0, ez}}
	var out [4]mgl32.Vec3
	for i, l := range local {
		out[i] = p.Center.Add(rot.Rotate(l))
	}
	return out
}

// PlaneProbe hit-tests rays against a fixed set of detected planes.
type PlaneProbe struct {
	Planes []Plane
	// Camera turns screen points into rays. Without it screen probes never hit.
	Camera *ARCamera
}

func (pp *PlaneProbe) Raycast(origin, dir mgl32.Vec3, filter TrackableType) (SurfaceHit, bool) {
	var (
		best  SurfaceHit
		found bool
	)
	if dir.Len() < geometryEpsilon {
		return best, false
	}
	dir = dir.Normalize()

	for _, p := range pp.Planes {
		pt, dist, ok := rayPlaneY(origin, dir, p.Center[1])
		if !ok {
			continue
		}
		kind := TrackablePlaneWithinInfinity
		if p.Contains(pt) {
			kind = TrackablePlaneWithinPolygon
		}
		if filter&kind == 0 && !(kind == TrackablePlaneWithinPolygon && filter&TrackablePlaneWithinInfinity != 0) {
			continue
		}
		if found && dist >= best.Distance {
			continue
		}
		best = SurfaceHit{
			Pose:     Pose{Position: pt, Rotation: p.Rotation()},
			Distance: dist,
			Type:     kind,
		}
		found = true
	}
	return best, found
}

func (pp *PlaneProbe) RaycastScreen(pt engo.Point, filter TrackableType) (SurfaceHit, bool) {
	if pp.Camera == nil {
		return SurfaceHit{}, false
	}
	origin, dir := pp.Camera.ScreenRay(pt)
	return pp.Raycast(origin, dir, filter)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
