// Package config loads loupe's configuration: the collections mapping
// consumed by import resolution, workspace scan limits, and logging.
//
// Precedence, lowest to highest: struct defaults, loupe.toml, LOUPE_*
// environment variables, programmatic overrides. The merged result is
// validated against an embedded JSON schema before unmarshalling.
package config

import (
	_ "embed"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const envPrefix = "LOUPE_"

// Config is the resolved loupe configuration.
type Config struct {
	// Collections maps collection names to directory paths. Import
	// resolution consumes it; the core only carries it through.
	Collections map[string]string `koanf:"collections"`

	// Include restricts which directory entries the loader creates
	// documents for, as doublestar globs against the base name.
	Include []string `koanf:"include"`

	// MaxDirEntries bounds the loader's directory fan-out.
	MaxDirEntries int `koanf:"max-dir-entries"`

	// LogLevel is a logrus level name.
	LogLevel string `koanf:"log-level"`

	// WorkspaceScan controls preloading the workspace root on
	// initialize: "on", "off", or "auto" (off in CI).
	WorkspaceScan string `koanf:"workspace-scan"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Collections:   map[string]string{},
		Include:       []string{"*.go"},
		MaxDirEntries: 1024,
		LogLevel:      "info",
		WorkspaceScan: "auto",
	}
}

// Load reads configuration from path (skipped when empty or absent)
// with environment and explicit overrides applied on top.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("config: %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", "-")
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("config: overrides: %w", err)
		}
	}

	if err := validate(k.Raw()); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// validate checks the merged configuration map against the embedded
// schema. The map is round-tripped through JSON so koanf's native
// types normalize to what the validator expects.
func validate(raw map[string]interface{}) error {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config: encode for validation: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("config: decode for validation: %w", err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("config: schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("loupe://config.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("config: schema: %w", err)
	}
	schema, err := compiler.Compile("loupe://config.schema.json")
	if err != nil {
		return fmt.Errorf("config: schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
