package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#000")
	require.NoError(t, err)
	assert.Equal(t, Black, c)

	c, err = ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, White, c)

	c, err = ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, Color{1, 0, 0}, c)
	assert.Equal(t, "#ff0000", c.Hex())

	_, err = ParseColor("red")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestColor_YAML(t *testing.T) {
	var doc struct {
		In Color `yaml:"in"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`in: "#00ff00"`), &doc))
	assert.Equal(t, Color{0, 1, 0}, doc.In)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "#00ff00")

	assert.Error(t, yaml.Unmarshal([]byte(`in: "#zz"`), &doc))
}
