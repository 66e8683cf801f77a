package arspawn

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader property names recognized by the color override.
const (
	PropBaseColor     = "_BaseColor"
	PropColor         = "_Color"
	PropEmissionColor = "_EmissionColor"
	KeywordEmission   = "_EMISSION"
)

// PropertyMaterial is a Material backed by a fixed set of color properties. Properties the
// shader does not declare cannot be added later.
type PropertyMaterial struct {
	Shader string

	colors   map[string]mgl32.Vec4
	keywords map[string]bool
}

func NewPropertyMaterial(shader string, colors map[string]mgl32.Vec4) *PropertyMaterial {
	m := &PropertyMaterial{
		Shader:   shader,
		colors:   make(map[string]mgl32.Vec4, len(colors)),
		keywords: map[string]bool{},
	}
	for name, c := range colors {
		m.colors[name] = c
	}
	return m
}

func (m *PropertyMaterial) HasProperty(name string) bool {
	_, ok := m.colors[name]
	return ok
}

func (m *PropertyMaterial) Color(name string) (mgl32.Vec4, bool) {
	c, ok := m.colors[name]
	return c, ok
}

func (m *PropertyMaterial) SetColor(name string, c mgl32.Vec4) {
	if _, ok := m.colors[name]; !ok {
		return
	}
	m.colors[name] = c
}

func (m *PropertyMaterial) EnableKeyword(keyword string) {
	m.keywords[keyword] = true
}

func (m *PropertyMaterial) IsKeywordEnabled(keyword string) bool {
	return m.keywords[keyword]
}

// Properties returns the declared property names in sorted order.
func (m *PropertyMaterial) Properties() []string {
	names := make([]string, 0, len(m.colors))
	for name := range m.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone copies the material so an instance can be tinted without touching its template.
func (m *PropertyMaterial) Clone() *PropertyMaterial {
	c := NewPropertyMaterial(m.Shader, m.colors)
	for k, v := range m.keywords {
		c.keywords[k] = v
	}
	return c
}

// ApplyColorOverride tints every material of every renderer under e. Base and legacy color
// properties get base, emissive materials get emission with the emission keyword enabled.
// It returns the number of materials that had at least one property changed.
func ApplyColorOverride(e Entity, base, emission mgl32.Vec4) int {
	touched := 0
	for _, r := range e.Renderers() {
		for _, mat := range r.Materials() {
			changed := false
			if mat.HasProperty(PropBaseColor) {
				mat.SetColor(PropBaseColor, base)
				changed = true
			}
			if mat.HasProperty(PropColor) {
				mat.SetColor(PropColor, base)
				changed = true
			}
			if mat.HasProperty(PropEmissionColor) {
				mat.EnableKeyword(KeywordEmission)
				mat.SetColor(PropEmissionColor, emission)
				changed = true
			}
			if changed {
				touched++
			}
		}
	}
	return touched
}
