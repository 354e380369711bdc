package galaxy

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	app_rt "github.com/gekko3d/galaxy/galaxyrt/rt/app"
)

// WindowState is the single shared GLFW window.
type WindowState struct {
	windowGlfw   *glfw.Window
	width        int
	height       int
	title        string
	scrollHooked bool
}

func createWindowState(width, height int, title string) (*WindowState, error) {
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if height <= 0 {
		height = DefaultWindowHeight
	}
	if title == "" {
		title = DefaultWindowTitle
	}
	win, err := app_rt.CreateWindow(width, height, title)
	if err != nil {
		return nil, err
	}
	return &WindowState{windowGlfw: win, width: width, height: height, title: title}, nil
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw != nil && s.windowGlfw.ShouldClose()
}

func (s *WindowState) destroy() {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
		glfw.Terminate()
	}
}
