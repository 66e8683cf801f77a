package arspawn

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyMaterial(t *testing.T) {
	m := NewPropertyMaterial("URP/Lit", map[string]mgl32.Vec4{PropBaseColor: {1, 1, 1, 1}})

	assert.True(t, m.HasProperty(PropBaseColor))
	assert.False(t, m.HasProperty(PropColor))

	m.SetColor(PropColor, mgl32.Vec4{1, 0, 0, 1})
	assert.False(t, m.HasProperty(PropColor), "undeclared properties stay undeclared")

	m.SetColor(PropBaseColor, mgl32.Vec4{0, 1, 0, 1})
	c, ok := m.Color(PropBaseColor)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, c)

	assert.False(t, m.IsKeywordEnabled(KeywordEmission))
	m.EnableKeyword(KeywordEmission)
	assert.True(t, m.IsKeywordEnabled(KeywordEmission))

	c2 := m.Clone()
	c2.SetColor(PropBaseColor, mgl32.Vec4{})
	c, _ = m.Color(PropBaseColor)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, c)
	assert.True(t, c2.IsKeywordEnabled(KeywordEmission))
	assert.Equal(t, []string{PropBaseColor}, c2.Properties())
}

func TestApplyColorOverride(t *testing.T) {
	scene := NewScene()
	e, err := scene.Instantiate(testAsset(), IdentityPose())
	require.NoError(t, err)

	base := mgl32.Vec4{0.6, 0.2, 1, 1}
	emission := mgl32.Vec4{0.3, 0.1, 0.6, 1}
	assert.Equal(t, 2, ApplyColorOverride(e, base, emission))

	var emissive, plain int
	for _, r := range e.Renderers() {
		for _, m := range r.Materials() {
			if m.HasProperty(PropEmissionColor) {
				emissive++
				c, _ := m.Color(PropEmissionColor)
				assert.Equal(t, emission, c)
				assert.True(t, m.IsKeywordEnabled(KeywordEmission))
			} else {
				plain++
				assert.False(t, m.IsKeywordEnabled(KeywordEmission))
			}
		}
	}
	assert.Equal(t, 1, emissive)
	assert.Equal(t, 2, plain)
}
