// internal/config/config.go
//
// This package holds the sequencing constraints: load ceiling, review window,
// checkpoint bounds, passing thresholds and the cognitive-load weights.
// Values come from Default(), optionally overlaid by a YAML file and by
// key=value overrides from the command line.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the conventional config file looked up by the CLI.
const DefaultFileName = "pathseq.yaml"

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

const defaultConfigYAML = `# pathseq sequencing configuration
load_ceiling: 0.7
review_window: 3
review_reset_load: 0.2
checkpoint_min: 2
checkpoint_max: 5
pass_threshold_formative: 0.8
pass_threshold_summative: 0.85

# Per-objective load = base + difficulty*tier/5 + bloom*bloomFactor
#   + duration*min(minutes/60,1) + prerequisites*min(count/5,1)
weights:
  base: 0.05
  difficulty: 0.2
  bloom: 0.5
  duration: 0.1
  prerequisites: 0.05
`

// LoadWeights are the coefficients of the per-objective load estimate.
type LoadWeights struct {
	Base          float64 `json:"base" yaml:"base" validate:"gte=0,lte=1"`
	Difficulty    float64 `json:"difficulty" yaml:"difficulty" validate:"gte=0,lte=1"`
	Bloom         float64 `json:"bloom" yaml:"bloom" validate:"gte=0,lte=1"`
	Duration      float64 `json:"duration" yaml:"duration" validate:"gte=0,lte=1"`
	Prerequisites float64 `json:"prerequisites" yaml:"prerequisites" validate:"gte=0,lte=1"`
}

// Config holds the constraints for one optimization call.
type Config struct {
	LoadCeiling            float64     `json:"load_ceiling" yaml:"load_ceiling" validate:"gt=0,lte=1"`
	ReviewWindow           int         `json:"review_window" yaml:"review_window" validate:"gte=1"`
	ReviewResetLoad        float64     `json:"review_reset_load" yaml:"review_reset_load" validate:"gte=0,ltfield=LoadCeiling"`
	CheckpointMin          int         `json:"checkpoint_min" yaml:"checkpoint_min" validate:"gte=1,ltefield=CheckpointMax"`
	CheckpointMax          int         `json:"checkpoint_max" yaml:"checkpoint_max" validate:"gte=1"`
	PassThresholdFormative float64     `json:"pass_threshold_formative" yaml:"pass_threshold_formative" validate:"gt=0,lte=1"`
	PassThresholdSummative float64     `json:"pass_threshold_summative" yaml:"pass_threshold_summative" validate:"gt=0,lte=1"`
	Weights                LoadWeights `json:"weights" yaml:"weights"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		LoadCeiling:            0.7,
		ReviewWindow:           3,
		ReviewResetLoad:        0.2,
		CheckpointMin:          2,
		CheckpointMax:          5,
		PassThresholdFormative: 0.8,
		PassThresholdSummative: 0.85,
		Weights: LoadWeights{
			Base:          0.05,
			Difficulty:    0.2,
			Bloom:         0.5,
			Duration:      0.1,
			Prerequisites: 0.05,
		},
	}
}

// DefaultYAML returns a commented config file matching Default().
func DefaultYAML() string {
	return defaultConfigYAML
}

var validate = validator.New()

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldKey(fe.StructNamespace())
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", field, fieldKey(fe.Param()))
	case "ltfield":
		return fmt.Sprintf("%s must be below %s", field, fieldKey(fe.Param()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

var fieldKeys = map[string]string{
	"LoadCeiling":            "load_ceiling",
	"ReviewWindow":           "review_window",
	"ReviewResetLoad":        "review_reset_load",
	"CheckpointMin":          "checkpoint_min",
	"CheckpointMax":          "checkpoint_max",
	"PassThresholdFormative": "pass_threshold_formative",
	"PassThresholdSummative": "pass_threshold_summative",
	"Weights":                "weights",
	"Base":                   "base",
	"Difficulty":             "difficulty",
	"Bloom":                  "bloom",
	"Duration":               "duration",
	"Prerequisites":          "prerequisites",
}

// fieldKey maps a struct namespace such as "Config.Weights.Bloom" to the
// YAML key path "weights.bloom".
func fieldKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, part := range parts {
		if key, ok := fieldKeys[part]; ok {
			parts[i] = key
		}
	}
	return strings.Join(parts, ".")
}

// Parse decodes YAML over Default() and validates the result. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML config file. An empty path yields Default().
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	if info.IsDir() {
		return Config{}, fmt.Errorf("config: %s is a directory, expected a file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

type setter func(*Config, string) error

func floatSetter(field func(*Config) *float64) setter {
	return func(c *Config, raw string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func intSetter(field func(*Config) *int) setter {
	return func(c *Config, raw string) error {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

var setters = map[string]setter{
	"load_ceiling":             floatSetter(func(c *Config) *float64 { return &c.LoadCeiling }),
	"review_window":            intSetter(func(c *Config) *int { return &c.ReviewWindow }),
	"review_reset_load":        floatSetter(func(c *Config) *float64 { return &c.ReviewResetLoad }),
	"checkpoint_min":           intSetter(func(c *Config) *int { return &c.CheckpointMin }),
	"checkpoint_max":           intSetter(func(c *Config) *int { return &c.CheckpointMax }),
	"pass_threshold_formative": floatSetter(func(c *Config) *float64 { return &c.PassThresholdFormative }),
	"pass_threshold_summative": floatSetter(func(c *Config) *float64 { return &c.PassThresholdSummative }),
	"weights.base":             floatSetter(func(c *Config) *float64 { return &c.Weights.Base }),
	"weights.difficulty":       floatSetter(func(c *Config) *float64 { return &c.Weights.Difficulty }),
	"weights.bloom":            floatSetter(func(c *Config) *float64 { return &c.Weights.Bloom }),
	"weights.duration":         floatSetter(func(c *Config) *float64 { return &c.Weights.Duration }),
	"weights.prerequisites":    floatSetter(func(c *Config) *float64 { return &c.Weights.Prerequisites }),
}

// Keys lists the override keys ApplyOverrides understands.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for key := range setters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ApplyOverrides returns a copy of c with key=value overrides applied and
// validated. Keys use the YAML names, with dots for nested weights.
func (c Config) ApplyOverrides(overrides map[string]string) (Config, error) {
	out := c
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		set, ok := setters[strings.TrimSpace(key)]
		if !ok {
			return Config{}, fmt.Errorf("config: unknown override key %q", key)
		}
		if err := set(&out, overrides[key]); err != nil {
			return Config{}, fmt.Errorf("config: override %s: %w", key, err)
		}
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}
