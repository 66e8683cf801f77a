package arspawn

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	planBackground = color.NRGBA{32, 32, 36, 255}
	planPlane      = color.NRGBA{60, 110, 70, 255}
	planTrack      = color.NRGBA{120, 160, 230, 255}
	planLabel      = color.NRGBA{230, 230, 230, 255}
)

// planView maps the XZ floor plane onto image pixels, +Z pointing up.
type planView struct {
	minX, minZ float32
	scale      float32
	margin     float32
	size       int
}

func newPlanView(points []mgl32.Vec3, size int) planView {
	v := planView{margin: 16, size: size, scale: 1}
	if len(points) == 0 {
		return v
	}
	minX, maxX := points[0][0], points[0][0]
	minZ, maxZ := points[0][2], points[0][2]
	for _, p := range points[1:] {
		minX = min(minX, p[0])
		maxX = max(maxX, p[0])
		minZ = min(minZ, p[2])
		maxZ = max(maxZ, p[2])
	}
	const pad = 0.5
	minX, minZ = minX-pad, minZ-pad
	span := max(maxX-minX+pad, maxZ-minZ+pad)
	v.minX, v.minZ = minX, minZ
	v.scale = (float32(size) - 2*v.margin) / span
	return v
}

func (v planView) pixel(p mgl32.Vec3) (int, int) {
	x := (p[0]-v.minX)*v.scale + v.margin
	y := float32(v.size) - ((p[2]-v.minZ)*v.scale + v.margin)
	return int(x), int(y)
}

func (v planView) world(px, py int) mgl32.Vec3 {
	x := (float32(px)-v.margin)/v.scale + v.minX
	z := (float32(v.size)-float32(py)-v.margin)/v.scale + v.minZ
	return mgl32.Vec3{x, 0, z}
}

// RenderPlan draws a top down view of a played session: detected planes, the camera path
// and every placement in its recorded color.
func RenderPlan(rep Report, s *Session, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillRect(img, img.Bounds(), planBackground)

	v := newPlanView(planPoints(rep, s), size)

	for _, p := range s.Planes {
		drawPlane(img, v, p)
	}
	for i := 1; i < len(rep.CameraTrack); i++ {
		x0, y0 := v.pixel(rep.CameraTrack[i-1])
		x1, y1 := v.pixel(rep.CameraTrack[i])
		drawLine(img, x0, y0, x1, y1, planTrack)
	}
	if len(rep.CameraTrack) > 0 {
		x, y := v.pixel(rep.CameraTrack[0])
		drawDisc(img, x, y, 3, planTrack)
	}

	d := &font.Drawer{Dst: img, Src: image.NewUniform(planLabel), Face: basicfont.Face7x13}
	for _, pl := range rep.Placements {
		x, y := v.pixel(pl.Position)
		c := toNRGBA(pl.Color)
		if pl.Marker {
			fillRect(img, image.Rect(x-4, y-4, x+4, y+4), c)
		} else {
			drawDisc(img, x, y, 6, c)
		}
		d.Dot = fixed.P(x+8, y+4)
		d.DrawString(fmt.Sprintf("#%d %s", pl.ID, pl.Name))
	}
	d.Dot = fixed.P(int(v.margin), size-4)
	d.DrawString(fmt.Sprintf("%s  %d frames  %.1fs  %s", rep.Session, rep.Frames, rep.Duration, rep.State))
	return img
}

// planPoints is everything the plan has to fit.
func planPoints(rep Report, s *Session) []mgl32.Vec3 {
	var points []mgl32.Vec3
	for _, p := range s.Planes {
		c := p.Corners()
		points = append(points, c[:]...)
	}
	points = append(points, rep.CameraTrack...)
	for _, pl := range rep.Placements {
		points = append(points, pl.Position)
	}
	return points
}

// WriteSnapshot encodes img as WebP or PNG depending on the file extension. Nothing is left
// at path when encoding fails.
func WriteSnapshot(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		if err = nativewebp.Encode(f, img, nil); err != nil {
			err = fmt.Errorf("webp encode: %w", err)
		}
	default:
		if err = png.Encode(f, img); err != nil {
			err = fmt.Errorf("png encode: %w", err)
		}
	}
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func toNRGBA(c mgl32.Vec4) color.NRGBA {
	return color.NRGBA{clamp8(c[0]), clamp8(c[1]), clamp8(c[2]), clamp8(c[3])}
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func drawPlane(img *image.NRGBA, v planView, p Plane) {
	corners := p.Corners()
	bounds := image.Rectangle{}
	for i, c := range corners {
		x, y := v.pixel(c)
		r := image.Rect(x, y, x+1, y+1)
		if i == 0 {
			bounds = r
		} else {
			bounds = bounds.Union(r)
		}
	}
	bounds = bounds.Intersect(img.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			w := v.world(x, y)
			w[1] = p.Center[1]
			if p.Contains(w) {
				img.SetNRGBA(x, y, planPlane)
			}
		}
	}
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawDisc(img *image.NRGBA, cx, cy, radius int, c color.NRGBA) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > radius*radius {
				continue
			}
			if image.Pt(cx+x, cy+y).In(img.Bounds()) {
				img.SetNRGBA(cx+x, cy+y, c)
			}
		}
	}
}

func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetNRGBA(x0, y0, c)
		}
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(dx*t))
		y := y0 + int(math.Round(dy*t))
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetNRGBA(x, y, c)
		}
	}
}
