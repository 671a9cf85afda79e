package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saturnines/nexus-gql/pkg/errors"
)

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(config *Transport) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultValueSetter handles setting default values
type DefaultValueSetter interface {
	SetDefaults(config *Transport)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader reads transport configurations from YAML
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader returns a Loader with env expansion, defaults and every
// built-in validator.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&TransportDefaults{},
		&RequiredFieldValidator{},
		&EndpointValidator{},
		&LogValidator{},
	)
}

// Load a transport config from a YAML file
func (l *Loader) Load(path string) (*Transport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to read file")
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Transport, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Transport
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(&cfg)...)
	}

	if len(allErrors) > 0 {
		return nil, fmt.Errorf("%w: %v", errors.ErrValidation, allErrors)
	}

	return &cfg, nil
}

// TransportDefaults implements DefaultValueSetter for Transport
type TransportDefaults struct{}

// SetDefaults sets default values for Transport
func (d *TransportDefaults) SetDefaults(config *Transport) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}
	if config.Log.Format == "" {
		config.Log.Format = DefaultLogFormat
	}
	if len(config.Log.Outputs) == 0 {
		config.Log.Outputs = []string{DefaultLogOutput}
	}
}

// RequiredFieldValidator validates required fields
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(config *Transport) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(config.Endpoint) == "" {
		errs = append(errs, ValidationError{Field: "endpoint", Message: "is required"})
	}

	return errs
}

// EndpointValidator checks that the endpoint is an absolute http(s) URL
type EndpointValidator struct{}

// Validate parses the endpoint. An empty endpoint is left to RequiredFieldValidator.
func (v *EndpointValidator) Validate(config *Transport) []ValidationError {
	if strings.TrimSpace(config.Endpoint) == "" {
		return nil
	}

	u, err := url.Parse(config.Endpoint)
	if err != nil {
		return []ValidationError{{Field: "endpoint", Message: err.Error()}}
	}
	if !u.IsAbs() || u.Host == "" {
		return []ValidationError{{Field: "endpoint", Message: "must be an absolute URL"}}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []ValidationError{{Field: "endpoint", Message: fmt.Sprintf("unsupported scheme: %s", u.Scheme)}}
	}

	return nil
}

// LogValidator validates logger settings
type LogValidator struct{}

// Validate checks level and format values
func (v *LogValidator) Validate(config *Transport) []ValidationError {
	var errs []ValidationError

	switch strings.ToLower(config.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level: %s", config.Log.Level)})
	}

	switch strings.ToLower(config.Log.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown format: %s", config.Log.Format)})
	}

	if config.Log.Rotation.MaxSizeMB < 0 || config.Log.Rotation.MaxBackups < 0 || config.Log.Rotation.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{Field: "log.rotation", Message: "values must not be negative"})
	}

	return errs
}
