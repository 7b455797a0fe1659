package config

import (
	"fmt"
	"strings"
	"time"
)

// Classifier backends.
const (
	ClassifierAuto     = "auto"
	ClassifierFERPlus  = "ferplus"
	ClassifierDeepFace = "deepface"
	ClassifierMock     = "mock"
)

// Language model providers. Auto chains every provider with a key,
// Gemini first.
const (
	LLMAuto   = "auto"
	LLMGemini = "gemini"
	LLMOpenAI = "openai"
	LLMMock   = "mock"
)

// Config holds all configuration for the moodcam server.
// Flag parsing is done in cmd/moodcam/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug    bool
	LogLevel string

	// Port is the HTTP listen port.
	Port string

	// StaticDir is served at / when set.
	StaticDir string

	// Camera.
	CameraIndex  int
	CameraWidth  int
	CameraHeight int

	// Capture and session.
	AnalysisInterval time.Duration
	HistoryLimit     int
	SessionMirror    bool   // write the session to a temp JSON file
	SessionDir       string // empty uses os.TempDir

	// Classifier selects the emotion backend.
	Classifier   string
	DeepFaceURL  string
	FERPlusModel string
	YuNetModel   string

	// Audio.
	AudioBackend    string
	AudioDevice     string
	AudioSampleRate int
	AudioOutputRate int
	RecordingDir    string

	// Language model.
	LLMProvider   string
	GoogleAPIKey  string
	GeminiModel   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Transcription.
	TranscribeModel    string
	TranscribeLanguage string

	// MaxQuestions is how many questions precede the recommendations.
	MaxQuestions int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:           "info",
		Port:               "8080",
		CameraWidth:        640,
		CameraHeight:       480,
		AnalysisInterval:   3 * time.Second,
		HistoryLimit:       200,
		SessionMirror:      true,
		Classifier:         ClassifierAuto,
		DeepFaceURL:        "http://localhost:5005",
		FERPlusModel:       "models/emotion-ferplus-8.onnx",
		YuNetModel:         "models/face_detection_yunet.onnx",
		AudioBackend:       "auto",
		AudioSampleRate:    44100,
		LLMProvider:        LLMAuto,
		GeminiModel:        "gemini-2.5-flash",
		OpenAIModel:        "gpt-4o-mini",
		TranscribeModel:    "whisper-1",
		TranscribeLanguage: "es",
		MaxQuestions:       3,
	}
}

// LoadEnv applies environment overrides. Call LoadDotEnv first so .env
// values are visible, and parse flags after so flags win.
func (c *Config) LoadEnv() {
	c.LogLevel = String("LOG_LEVEL", c.LogLevel)
	c.Port = String("PORT", c.Port)
	c.StaticDir = String("STATIC_DIR", c.StaticDir)

	c.CameraIndex = Int("CAMERA_INDEX", c.CameraIndex)
	c.CameraWidth = Int("CAMERA_WIDTH", c.CameraWidth)
	c.CameraHeight = Int("CAMERA_HEIGHT", c.CameraHeight)

	c.AnalysisInterval = Duration("ANALYSIS_INTERVAL", c.AnalysisInterval)
	c.HistoryLimit = Int("HISTORY_LIMIT", c.HistoryLimit)
	c.SessionMirror = Bool("SESSION_MIRROR", c.SessionMirror)
	c.SessionDir = String("SESSION_DIR", c.SessionDir)

	c.Classifier = strings.ToLower(String("CLASSIFIER", c.Classifier))
	c.DeepFaceURL = String("DEEPFACE_URL", c.DeepFaceURL)
	c.FERPlusModel = String("FERPLUS_MODEL", c.FERPlusModel)
	c.YuNetModel = String("YUNET_MODEL", c.YuNetModel)

	c.AudioBackend = String("AUDIO_BACKEND", c.AudioBackend)
	c.AudioDevice = String("AUDIO_DEVICE", c.AudioDevice)
	c.AudioSampleRate = Int("AUDIO_SAMPLE_RATE", c.AudioSampleRate)
	c.AudioOutputRate = Int("AUDIO_OUTPUT_RATE", c.AudioOutputRate)
	c.RecordingDir = String("RECORDING_DIR", c.RecordingDir)

	c.LLMProvider = strings.ToLower(String("LLM_PROVIDER", c.LLMProvider))
	c.GoogleAPIKey = String("GOOGLE_API_KEY", c.GoogleAPIKey)
	c.GeminiModel = String("GEMINI_MODEL", c.GeminiModel)
	c.OpenAIKey = String("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIModel = String("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIBaseURL = String("OPENAI_BASE_URL", c.OpenAIBaseURL)

	c.TranscribeModel = String("WHISPER_MODEL", c.TranscribeModel)
	c.TranscribeLanguage = String("WHISPER_LANGUAGE", c.TranscribeLanguage)

	c.MaxQuestions = Int("MAX_QUESTIONS", c.MaxQuestions)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return &ConfigError{Field: "Port", Message: "PORT must not be empty"}
	}
	if c.AnalysisInterval <= 0 {
		return &ConfigError{Field: "AnalysisInterval", Message: "ANALYSIS_INTERVAL must be positive"}
	}
	if c.HistoryLimit < 1 {
		return &ConfigError{Field: "HistoryLimit", Message: "HISTORY_LIMIT must be at least 1"}
	}
	if c.MaxQuestions < 1 {
		return &ConfigError{Field: "MaxQuestions", Message: "MAX_QUESTIONS must be at least 1"}
	}
	if c.CameraIndex < 0 {
		return &ConfigError{Field: "CameraIndex", Message: "CAMERA_INDEX must not be negative"}
	}

	switch c.Classifier {
	case ClassifierAuto, ClassifierFERPlus, ClassifierMock:
	case ClassifierDeepFace:
		if c.DeepFaceURL == "" {
			return &ConfigError{Field: "DeepFaceURL", Message: "DEEPFACE_URL is required for the deepface classifier"}
		}
	default:
		return &ConfigError{Field: "Classifier", Message: fmt.Sprintf("unknown classifier %q", c.Classifier)}
	}

	switch c.LLMProvider {
	case LLMAuto, LLMMock:
	case LLMGemini:
		if c.GoogleAPIKey == "" {
			return &ConfigError{Field: "GoogleAPIKey", Message: "GOOGLE_API_KEY environment variable is required for Gemini"}
		}
	case LLMOpenAI:
		if c.OpenAIKey == "" {
			return &ConfigError{Field: "OpenAIKey", Message: "OPENAI_API_KEY environment variable is required for OpenAI"}
		}
	default:
		return &ConfigError{Field: "LLMProvider", Message: fmt.Sprintf("unknown LLM provider %q", c.LLMProvider)}
	}
	return nil
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
