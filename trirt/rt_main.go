package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/meshrt/logging"
	"github.com/gekko3d/meshrt/trirt/rt/app"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	preset := flag.String("preset", "", fmt.Sprintf("Built-in scene %v", app.PresetNames()))
	scenePath := flag.String("scene", "", "JSON scene file, overrides -preset")
	out := flag.String("out", "", "Output PNG path")
	width := flag.Int("width", 0, "Image width")
	height := flag.Int("height", 0, "Image height")
	oversample := flag.Int("oversample", 0, "Samples per pixel axis")
	workers := flag.Int("workers", -1, "Worker goroutines, 0 for NumCPU-1")
	steal := flag.Bool("steal", true, "Enable work stealing")
	overlay := flag.Bool("overlay", false, "Draw timings onto the image")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := logging.NewDefaultLogger("trirt", *debug)

	cfg := app.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = app.LoadConfig(*configPath)
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	}

	// explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "preset":
			cfg.Preset = *preset
			cfg.Scene = nil
		case "out":
			cfg.Output = *out
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "oversample":
			cfg.Oversample = *oversample
		case "workers":
			cfg.Workers = *workers
		case "steal":
			cfg.WorkStealing = *steal
		case "overlay":
			cfg.Overlay = *overlay
		case "debug":
			cfg.Debug = *debug
		}
	})
	if *scenePath != "" {
		def, err := app.LoadScene(*scenePath)
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
		cfg.Scene = def
	}
	log.SetDebug(cfg.Debug)

	a, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	err = a.Run()
	a.Close()
	if err != nil {
		log.Errorf("render failed: %v", err)
		os.Exit(1)
	}
}
