package galaxy

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyEscape int = iota
	KeyF3
	KeyR
	KeyEqual
	KeyMinus
	MouseButtonLeft
	MouseButtonRight
	inputCount
)

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeyF3:     glfw.KeyF3,
	KeyR:      glfw.KeyR,
	KeyEqual:  glfw.KeyEqual,
	KeyMinus:  glfw.KeyMinus,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:  glfw.MouseButtonLeft,
	MouseButtonRight: glfw.MouseButtonRight,
}

type Input struct {
	Pressed      [inputCount]bool
	JustPressed  [inputCount]bool
	JustReleased [inputCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	ScrollY                  float64

	WindowWidth, WindowHeight int

	scrollAccum float64
	hasCursor   bool
}

// beginFrame clears the per-frame edges and moves accumulated scroll into
// ScrollY.
func (input *Input) beginFrame() {
	input.JustPressed = [inputCount]bool{}
	input.JustReleased = [inputCount]bool{}
	input.ScrollY = input.scrollAccum
	input.scrollAccum = 0
}

func (input *Input) setPressed(key int, down bool) {
	if down && !input.Pressed[key] {
		input.JustPressed[key] = true
	}
	if !down && input.Pressed[key] {
		input.JustReleased[key] = true
	}
	input.Pressed[key] = down
}

// moveCursor records the new cursor position. The first sample has no delta.
func (input *Input) moveCursor(x, y float64) {
	if input.hasCursor {
		input.MouseDeltaX = x - input.MouseX
		input.MouseDeltaY = y - input.MouseY
	} else {
		input.MouseDeltaX, input.MouseDeltaY = 0, 0
	}
	input.MouseX, input.MouseY = x, y
	input.hasCursor = true
}

func (input *Input) addScroll(dy float64) {
	input.scrollAccum += dy
}

// InputModule polls the shared window once per frame in Prelude.
type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	cmd.UseSystem(System(inputSystem).InStage(Prelude))
}

func inputSystem(s *WindowState, input *Input) {
	if s.windowGlfw == nil {
		return
	}
	if !s.scrollHooked {
		s.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
			input.addScroll(yoff)
		})
		s.scrollHooked = true
	}

	glfw.PollEvents()
	input.beginFrame()

	for key, glfwKey := range keyToGlfw {
		input.setPressed(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.setPressed(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.moveCursor(s.windowGlfw.GetCursorPos())
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetFramebufferSize()
}
