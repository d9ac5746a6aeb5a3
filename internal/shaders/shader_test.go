package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesEmbedded(t *testing.T) {
	for name, src := range map[string]string{"vertex": PointsVertex, "fragment": PointsFragment} {
		require.NotEmpty(t, src, name)
		assert.True(t, strings.HasPrefix(src, "#version 410 core"), name)
	}
}

func TestUniformsDeclared(t *testing.T) {
	all := PointsVertex + PointsFragment
	for _, u := range Uniforms {
		assert.Regexp(t, `uniform \w+ `+u+`;`, all, u)
	}
}

func TestAttributeLayout(t *testing.T) {
	assert.Contains(t, PointsVertex, "layout(location = 0) in vec3 position;")
	assert.Contains(t, PointsVertex, "layout(location = 1) in vec3 color;")
}
