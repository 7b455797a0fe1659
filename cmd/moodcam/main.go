// moodcam - webcam emotion capture with a guided music conversation.
// Serves the live stream, emotion history, audio recording and the
// conversation API over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-moodcam/internal/config"
	"github.com/teslashibe/go-moodcam/internal/log"
	"github.com/teslashibe/go-moodcam/pkg/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, envErr := parseFlags()

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)
	logger := log.L()
	if envErr != nil {
		logger.Warn("reading .env failed", "error", envErr)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return 1
	}

	if err := a.Init(); err != nil {
		logger.Error("initialization failed", "error", err)
		return 1
	}
	defer a.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		logger.Error("runtime error", "error", err)
		return 1
	}
	return 0
}

// parseFlags builds the configuration: defaults, then .env files and the
// environment, then command line flags.
func parseFlags() (config.Config, error) {
	cfg := config.DefaultConfig()
	envErr := config.LoadDotEnv(log.Discard())
	cfg.LoadEnv()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	port := flag.String("port", cfg.Port, "HTTP port (overrides PORT)")
	cameraIndex := flag.Int("camera", cfg.CameraIndex, "Camera device index (overrides CAMERA_INDEX)")
	classifier := flag.String("classifier", cfg.Classifier, "Emotion classifier: auto, ferplus, deepface, mock")
	interval := flag.Duration("interval", cfg.AnalysisInterval, "Minimum time between analyses")
	llm := flag.String("llm", cfg.LLMProvider, "Language model: auto, gemini, openai, mock")
	audioBackend := flag.String("audio", cfg.AudioBackend, "Audio backend: auto, arecord, mock")
	questions := flag.Int("questions", cfg.MaxQuestions, "Questions before recommending")
	static := flag.String("static", cfg.StaticDir, "Directory served at /")
	noMirror := flag.Bool("no-session-file", false, "Do not mirror the session to a temp JSON file")
	flag.Parse()

	cfg.Debug = *debug
	cfg.Port = *port
	cfg.CameraIndex = *cameraIndex
	cfg.Classifier = *classifier
	cfg.AnalysisInterval = *interval
	cfg.LLMProvider = *llm
	cfg.AudioBackend = *audioBackend
	cfg.MaxQuestions = *questions
	cfg.StaticDir = *static
	if *noMirror {
		cfg.SessionMirror = false
	}
	return cfg, envErr
}
