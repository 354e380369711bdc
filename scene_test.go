package galaxy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/galaxy/galaxyrt/rt/core"
)

const twinScene = `
window: {width: 800, title: Twin}
camera: {distance: 12, pitch: 0.5}
seed: 42
galaxies:
  - count: 1000
    inColor: "#ff6030"
    outColor: "#1b3984"
  - branches: 5
    spinning: -2
    position: [8, 1, -4]
    rotation: [0.4, 0, 0.2]
`

func TestLoadScene_AppliesDefaults(t *testing.T) {
	scene, err := LoadScene(strings.NewReader(twinScene))
	require.NoError(t, err)

	assert.Equal(t, 800, scene.Window.Width)
	assert.Equal(t, DefaultWindowHeight, scene.Window.Height)
	assert.Equal(t, "Twin", scene.Window.Title)
	assert.Equal(t, uint64(42), scene.Seed)
	require.Len(t, scene.Galaxies, 2)

	first := scene.Galaxies[0]
	assert.Equal(t, 1000, first.Count)
	assert.Equal(t, core.DefaultRadius, first.Radius)
	assert.Equal(t, core.DefaultBranches, first.Branches)
	assert.Equal(t, "#ff6030", first.InColor.Hex())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, first.Scale)

	second := scene.Galaxies[1]
	assert.Equal(t, core.DefaultCount, second.Count)
	assert.Equal(t, 5, second.Branches)
	assert.Equal(t, -2.0, second.Spinning)
	assert.Equal(t, core.Black, second.InColor)
	assert.Equal(t, core.White, second.OutColor)
	assert.Equal(t, mgl32.Vec3{8, 1, -4}, second.Position)
	assert.Equal(t, mgl32.Vec3{0.4, 0, 0.2}, second.Rotation)
}

func TestLoadScene_Empty(t *testing.T) {
	scene, err := LoadScene(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultScene(), scene)
}

func TestLoadScene_Rejects(t *testing.T) {
	cases := map[string]string{
		"negative count":  "galaxies: [{count: -1}]",
		"zero branches":   "galaxies: [{branches: 0}]",
		"negative radius": "galaxies: [{radius: -2}]",
		"bad color":       `galaxies: [{inColor: "red"}]`,
		"short vector":    "galaxies: [{position: [1, 2]}]",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScene(strings.NewReader(doc))
			assert.ErrorIs(t, err, core.ErrInvalidParameter)
		})
	}

	_, err := LoadScene(strings.NewReader("galaxies: [{colour: '#fff'}]"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestSceneFile_SaveAndLoad(t *testing.T) {
	scene, err := LoadScene(strings.NewReader(twinScene))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, SaveSceneFile(path, scene))

	loaded, err := LoadSceneFile(path)
	require.NoError(t, err)
	assert.Equal(t, scene.Seed, loaded.Seed)
	require.Len(t, loaded.Galaxies, 2)
	assert.Equal(t, scene.Galaxies[1].GenerationKey(), loaded.Galaxies[1].GenerationKey())
	assert.Equal(t, scene.Galaxies[1].Position, loaded.Galaxies[1].Position)
	assert.Equal(t, scene.Galaxies[0].InColor.Hex(), loaded.Galaxies[0].InColor.Hex())

	_, err = LoadSceneFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveScene_WritesHexColors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SaveScene(&buf, DefaultScene()))
	assert.Contains(t, buf.String(), "#000000")
	assert.Contains(t, buf.String(), "#ffffff")
	assert.Contains(t, buf.String(), "count: 30000")
}

func TestScene_ApplyCamera(t *testing.T) {
	scene, err := LoadScene(strings.NewReader(twinScene))
	require.NoError(t, err)

	cam := core.NewOrbitCamera()
	scene.ApplyCamera(cam)
	assert.Equal(t, float32(12), cam.Distance)
	assert.Equal(t, float32(0.5), cam.Pitch)

	far := float32(1e6)
	scene.Camera.Distance = &far
	scene.ApplyCamera(cam)
	assert.Equal(t, cam.MaxDistance, cam.Distance)
}
