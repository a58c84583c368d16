package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/ritzau/electre-kernel/pkg/outranking"
	"github.com/spf13/pflag"
)

// DefaultFile is the optional configuration file read from the working directory
const DefaultFile = "electre.toml"

// EnvPrefix prefixes environment variables, e.g. ELECTRE_CUT_THRESHOLD=0.7
const EnvPrefix = "ELECTRE_"

// Config holds all configuration for the application
type Config struct {
	Input        string  `koanf:"input"`
	Output       string  `koanf:"output"`
	Method       string  `koanf:"method"`
	CutThreshold float64 `koanf:"cut_threshold"`
	Watch        bool    `koanf:"watch"`
	Port         int     `koanf:"port"`
	Verbosity    string  `koanf:"verbosity"`
	VerboseCnt   int     `koanf:"verbose"`
	LogFormat    string  `koanf:"log_format"`
	Color        bool    `koanf:"color"`
}

// Load loads configuration from defaults, config file, method parameters,
// environment variables, and flags.
// Priority: Flags > Env > Method Parameters > Config File > Defaults
//
// params holds values read from an XMCDA method_parameters.xml and may be nil.
// The file path comes from the "config" flag when set.
func Load(f *pflag.FlagSet, params map[string]any) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]any{
		"input":         ".",
		"output":        ".",
		"method":        string(model.MethodAggregate),
		"cut_threshold": 1.0,
		"watch":         false,
		"port":          8080,
		"verbosity":     "",
		"verbose":       0,
		"log_format":    "text",
		"color":         true,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional)
	path := DefaultFile
	explicit := false
	if f != nil {
		if fl := f.Lookup("config"); fl != nil && fl.Changed {
			path = fl.Value.String()
			explicit = true
		}
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil && explicit {
		// A missing default file is fine, a missing explicit one is not
		return nil, fmt.Errorf("%w: failed to load config file %s: %v", model.ErrConfiguration, path, err)
	}

	// 3. Method parameters from the input directory
	if overlay := ParametersOverlay(params); len(overlay) > 0 {
		if err := k.Load(makeMapProvider(overlay), nil); err != nil {
			return nil, fmt.Errorf("failed to load method parameters: %w", err)
		}
	}

	// 4. Environment Variables
	// Prefix: ELECTRE_ (e.g., ELECTRE_PORT=9090, ELECTRE_CUT_THRESHOLD=0.7)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags
	if f != nil {
		// Dashed flag names map to config keys, e.g. cut-threshold to cut_threshold
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, any) {
			return strings.ReplaceAll(fl.Name, "-", "_"), posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", model.ErrConfiguration, err)
	}

	return &cfg, nil
}

// ParametersOverlay maps XMCDA method parameter names to config keys.
// Unknown parameters are dropped.
func ParametersOverlay(params map[string]any) map[string]any {
	overlay := make(map[string]any)
	for name, v := range params {
		switch name {
		case "eliminate_cycles_method":
			overlay["method"] = v
		case "cut_threshold":
			overlay["cut_threshold"] = v
		}
	}
	return overlay
}

// Validate checks values that every command depends on
func (c *Config) Validate() error {
	if _, err := model.ParseEliminationMethod(c.Method); err != nil {
		return err
	}
	if err := outranking.ValidateCutThreshold(c.CutThreshold); err != nil {
		return err
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: invalid port %d", model.ErrConfiguration, c.Port)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q (want text or json)", model.ErrConfiguration, c.LogFormat)
	}
	return nil
}

// EliminationMethod returns the validated cycle elimination method
func (c *Config) EliminationMethod() (model.EliminationMethod, error) {
	return model.ParseEliminationMethod(c.Method)
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]any
}

func makeMapProvider(m map[string]any) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]any, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
