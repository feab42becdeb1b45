package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrbassindale1/roomclimate/internal/app"
	"github.com/jrbassindale1/roomclimate/internal/constants"
	"github.com/jrbassindale1/roomclimate/internal/controllers/restserver"
	"github.com/jrbassindale1/roomclimate/internal/controllers/stream"
	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "", "Path to a YAML scenario file. Omit to run the built-in London scenario.")
	restAddr := flag.String("rest-addr", "0.0.0.0", "REST listen address")
	restPort := flag.Int("rest-port", 8080, "REST listen port")
	streamPort := flag.Int("stream-port", 8081, "WebSocket listen port")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("roomclimate %s\n", constants.Version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	provider := makeProvider(*cfgFile)
	defer provider.Close()

	opts := app.Options{
		REST:   restserver.Config{ListenAddr: *restAddr, Port: *restPort},
		Stream: stream.Config{ListenAddr: *restAddr, Port: *streamPort},
	}

	application := app.New(provider, opts, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func makeProvider(cfgFile string) config.ConfigProvider {
	if cfgFile == "" {
		log.Info("no -config given; running the default scenario")
		return config.NewStaticProvider(config.DefaultScenario())
	}
	filename, _ := filepath.Abs(cfgFile)
	return config.NewYAMLProvider(filename)
}
