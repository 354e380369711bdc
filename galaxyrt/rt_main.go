package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/galaxy"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	scenePath := flag.String("scene", "", "Scene YAML file (default: one default galaxy)")
	debug := flag.Bool("debug", false, "Show the FPS/profiler overlay and debug logs")
	seed := flag.Int64("seed", -1, "Override the scene seed")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	headless := flag.Bool("headless", false, "Generate and animate without a window")
	frames := flag.Uint64("frames", 0, "Exit after this many frames (0 = run until closed)")
	dump := flag.String("dump-scene", "", "Write the resolved scene to this YAML file and exit")
	flag.Parse()

	logger := galaxy.NewDefaultLogger("galaxy", *debug)

	scene := galaxy.DefaultScene()
	if *scenePath != "" {
		var err error
		if scene, err = galaxy.LoadSceneFile(*scenePath); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}
	if *seed >= 0 {
		scene.Seed = uint64(*seed)
	}
	if *width > 0 {
		scene.Window.Width = *width
	}
	if *height > 0 {
		scene.Window.Height = *height
	}

	if *dump != "" {
		if err := galaxy.SaveSceneFile(*dump, scene); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		logger.Infof("Scene written to %s", *dump)
		return
	}

	app := galaxy.NewApp()
	app.Commands().AddResources(logger)
	app.UseModules(
		galaxy.TimeModule{},
		galaxy.FrameLimitModule{Frames: *frames},
		galaxy.GalaxyModule{Seed: scene.Seed, Galaxies: scene.Galaxies},
	)
	if !*headless {
		app.UseModules(
			galaxy.InputModule{},
			galaxy.GalaxyRtModule{
				WindowWidth:  scene.Window.Width,
				WindowHeight: scene.Window.Height,
				WindowTitle:  scene.Window.Title,
				DebugMode:    *debug,
				Scene:        scene,
			},
		)
	} else if *frames == 0 {
		logger.Warnf("headless without -frames runs until interrupted")
	}

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
