package runtimeconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaSource []byte

const schemaURL = "themes-config.json"

// ErrConfigSchema marks a configuration document rejected by the schema.
var ErrConfigSchema = errors.New("themes: configuration does not match schema")

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func configSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// LoadConfig reads a YAML or JSON document from path, overlays it on
// DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryNotFound, "themes: read configuration").
			WithMetadata(map[string]any{"path": path})
	}
	return ParseConfig(raw)
}

// ParseConfig decodes raw YAML or JSON the same way LoadConfig does.
func ParseConfig(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, cfg.Validate()
	}

	var document any
	if err := yaml.Unmarshal(raw, &document); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "themes: decode configuration")
	}
	if document == nil {
		return cfg, cfg.Validate()
	}

	schema, err := configSchema()
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "themes: compile configuration schema")
	}
	if err := schema.Validate(document); err != nil {
		return Config{}, goerrors.Wrap(fmt.Errorf("%w: %s", ErrConfigSchema, describeSchemaError(err)),
			goerrors.CategoryValidation, "themes: configuration rejected").
			WithTextCode("CONFIG_SCHEMA")
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "themes: decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func describeSchemaError(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			location := node.InstanceLocation
			if location == "" {
				location = "/"
			}
			parts = append(parts, location+": "+node.Message)
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return strings.Join(parts, "; ")
}
