package galaxy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/galaxy/galaxyrt/rt/core"
)

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultWindowTitle  = "Galaxy"
)

// SceneDef is the on-disk scene layout.
type SceneDef struct {
	Window   WindowDef   `yaml:"window"`
	Camera   CameraDef   `yaml:"camera"`
	Seed     uint64      `yaml:"seed"`
	Galaxies []GalaxyDef `yaml:"galaxies"`
}

type WindowDef struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraDef struct {
	Distance *float32 `yaml:"distance"`
	Yaw      float32  `yaml:"yaw"`
	Pitch    float32  `yaml:"pitch"`
}

// GalaxyDef mirrors core.ParameterSet. Omitted fields take the default.
type GalaxyDef struct {
	Count      *int        `yaml:"count"`
	Radius     *float64    `yaml:"radius"`
	Branches   *int        `yaml:"branches"`
	Spinning   *float64    `yaml:"spinning"`
	Randomness *float64    `yaml:"randomness"`
	InColor    *core.Color `yaml:"inColor"`
	OutColor   *core.Color `yaml:"outColor"`
	Position   []float32   `yaml:"position"`
	Scale      []float32   `yaml:"scale"`
	Rotation   []float32   `yaml:"rotation"`
}

// Params applies the definition on top of core.DefaultParameterSet and
// validates the result.
func (d GalaxyDef) Params() (core.ParameterSet, error) {
	p := core.DefaultParameterSet()
	if d.Count != nil {
		p.Count = *d.Count
	}
	if d.Radius != nil {
		p.Radius = *d.Radius
	}
	if d.Branches != nil {
		p.Branches = *d.Branches
	}
	if d.Spinning != nil {
		p.Spinning = *d.Spinning
	}
	if d.Randomness != nil {
		p.Randomness = *d.Randomness
	}
	if d.InColor != nil {
		p.InColor = *d.InColor
	}
	if d.OutColor != nil {
		p.OutColor = *d.OutColor
	}

	var err error
	if p.Position, err = vec3Field("position", d.Position, p.Position); err != nil {
		return p, err
	}
	if p.Scale, err = vec3Field("scale", d.Scale, p.Scale); err != nil {
		return p, err
	}
	if p.Rotation, err = vec3Field("rotation", d.Rotation, p.Rotation); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func vec3Field(name string, v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	}
	return def, &core.ParamError{Field: name, Value: v, Rule: "must have 3 components"}
}

// Scene is a loaded, validated scene.
type Scene struct {
	Window   WindowDef
	Camera   CameraDef
	Seed     uint64
	Galaxies []core.ParameterSet
}

// DefaultScene is a window with one default galaxy.
func DefaultScene() *Scene {
	return &Scene{
		Window:   WindowDef{Width: DefaultWindowWidth, Height: DefaultWindowHeight, Title: DefaultWindowTitle},
		Galaxies: []core.ParameterSet{core.DefaultParameterSet()},
	}
}

func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	scene, err := LoadScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return scene, nil
}

// LoadScene decodes a YAML scene. An empty document yields DefaultScene.
func LoadScene(r io.Reader) (*Scene, error) {
	var def SceneDef
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultScene(), nil
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	scene := DefaultScene()
	scene.Seed = def.Seed
	scene.Camera = def.Camera
	if def.Window.Width > 0 {
		scene.Window.Width = def.Window.Width
	}
	if def.Window.Height > 0 {
		scene.Window.Height = def.Window.Height
	}
	if def.Window.Title != "" {
		scene.Window.Title = def.Window.Title
	}

	if len(def.Galaxies) > 0 {
		scene.Galaxies = scene.Galaxies[:0]
	}
	for i, g := range def.Galaxies {
		p, err := g.Params()
		if err != nil {
			return nil, fmt.Errorf("galaxy %d: %w", i, err)
		}
		scene.Galaxies = append(scene.Galaxies, p)
	}
	return scene, nil
}

// ApplyCamera copies the camera definition onto cam.
func (s *Scene) ApplyCamera(cam *core.OrbitCamera) {
	if s.Camera.Distance != nil {
		cam.Distance = *s.Camera.Distance
	}
	cam.Yaw = s.Camera.Yaw
	cam.Pitch = s.Camera.Pitch
	cam.Orbit(0, 0)
	cam.Zoom(0)
}

// Def converts a scene back to its on-disk form with every field spelled out.
func (s *Scene) Def() SceneDef {
	def := SceneDef{
		Window: s.Window,
		Camera: s.Camera,
		Seed:   s.Seed,
	}
	for _, p := range s.Galaxies {
		def.Galaxies = append(def.Galaxies, GalaxyDef{
			Count:      &p.Count,
			Radius:     &p.Radius,
			Branches:   &p.Branches,
			Spinning:   &p.Spinning,
			Randomness: &p.Randomness,
			InColor:    &p.InColor,
			OutColor:   &p.OutColor,
			Position:   p.Position[:],
			Scale:      p.Scale[:],
			Rotation:   p.Rotation[:],
		})
	}
	return def
}

func SaveScene(w io.Writer, s *Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Def()); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return enc.Close()
}

func SaveSceneFile(path string, s *Scene) error {
	var buf bytes.Buffer
	if err := SaveScene(&buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	return nil
}
