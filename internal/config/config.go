package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ThatOtherAndrew/Tinsel/internal/logging"
	"gopkg.in/yaml.v3"
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Settings struct {
	TreeParticles          int     `yaml:"tree_particles"`
	SnowParticles          int     `yaml:"snow_particles"`
	ListenAddr             string  `yaml:"listen_addr"`
	Window                 Window  `yaml:"window"`
	TreePointSize          float32 `yaml:"tree_point_size"`
	SnowPointSize          float32 `yaml:"snow_point_size"`
	ModelComplexity        int     `yaml:"model_complexity"`
	MinDetectionConfidence float64 `yaml:"min_detection_confidence"`
	MinTrackingConfidence  float64 `yaml:"min_tracking_confidence"`
	Debug                  bool    `yaml:"debug"`
}

func Default() *Settings {
	return &Settings{
		TreeParticles: 30000,
		SnowParticles: 1500,
		ListenAddr:    "127.0.0.1:8787",
		Window: Window{
			Width:  1024,
			Height: 768,
			Title:  "Tinsel",
		},
		TreePointSize:          0.045,
		SnowPointSize:          0.06,
		ModelComplexity:        -1,
		MinDetectionConfidence: 0.6,
		MinTrackingConfidence:  0.6,
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tinsel", "settings.yaml"), nil
}

// LoadSettings reads the settings file at path, or the default location
// when path is empty. A missing file is created with defaults. Broken or out
// of range values fall back to their defaults with a warning.
func LoadSettings(path string, logger logging.Logger) (*Settings, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if path == "" {
		p, err := GetSettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	defaults := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Infof("Creating default settings file at %s", path)
			if err := WriteSettings(path, defaults); err != nil {
				logger.Warnf("Failed to create default settings file: %v", err)
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	return ParseSettings(data, logger), nil
}

// ParseSettings never fails: unparseable input yields the defaults.
func ParseSettings(data []byte, logger logging.Logger) *Settings {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	// Check for unrecognised keys
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		logger.Warnf("Invalid settings file, using defaults: %v", err)
		return Default()
	}
	known := getKnownKeys(Settings{})
	for key := range raw {
		if !known[key] {
			logger.Warnf("unrecognised setting key '%s' in settings file", key)
		}
	}

	settings := Default()
	if err := yaml.Unmarshal(data, settings); err != nil {
		logger.Warnf("Invalid settings file, using defaults: %v", err)
		return Default()
	}

	settings.Validate(logger)
	return settings
}

// Validate replaces out of range values with their defaults.
func (s *Settings) Validate(logger logging.Logger) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	d := Default()

	if s.TreeParticles < 0 {
		logger.Warnf("Invalid tree_particles %d, must be >= 0, using default %d", s.TreeParticles, d.TreeParticles)
		s.TreeParticles = d.TreeParticles
	}
	if s.SnowParticles < 0 {
		logger.Warnf("Invalid snow_particles %d, must be >= 0, using default %d", s.SnowParticles, d.SnowParticles)
		s.SnowParticles = d.SnowParticles
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		logger.Warnf("Invalid window size %dx%d, using default %dx%d",
			s.Window.Width, s.Window.Height, d.Window.Width, d.Window.Height)
		s.Window.Width, s.Window.Height = d.Window.Width, d.Window.Height
	}
	if s.TreePointSize <= 0 {
		logger.Warnf("Invalid tree_point_size %.3f, must be > 0, using default %.3f", s.TreePointSize, d.TreePointSize)
		s.TreePointSize = d.TreePointSize
	}
	if s.SnowPointSize <= 0 {
		logger.Warnf("Invalid snow_point_size %.3f, must be > 0, using default %.3f", s.SnowPointSize, d.SnowPointSize)
		s.SnowPointSize = d.SnowPointSize
	}
	if s.ModelComplexity < -1 || s.ModelComplexity > 1 {
		logger.Warnf("Invalid model_complexity %d, must be -1, 0 or 1, using default %d", s.ModelComplexity, d.ModelComplexity)
		s.ModelComplexity = d.ModelComplexity
	}
	if s.MinDetectionConfidence < 0 || s.MinDetectionConfidence > 1 {
		logger.Warnf("Invalid min_detection_confidence %.2f, must be between 0.0 and 1.0, using default %.2f",
			s.MinDetectionConfidence, d.MinDetectionConfidence)
		s.MinDetectionConfidence = d.MinDetectionConfidence
	}
	if s.MinTrackingConfidence < 0 || s.MinTrackingConfidence > 1 {
		logger.Warnf("Invalid min_tracking_confidence %.2f, must be between 0.0 and 1.0, using default %.2f",
			s.MinTrackingConfidence, d.MinTrackingConfidence)
		s.MinTrackingConfidence = d.MinTrackingConfidence
	}
}

func WriteSettings(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if tag := field.Tag.Get("yaml"); tag != "" {
			// Handle tags like "field,omitempty"
			name := strings.Split(tag, ",")[0]
			if name != "-" {
				keys[name] = true
			}
		}
	}
	return keys
}
