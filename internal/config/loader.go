package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// findConfigFile finds the config file to use.
// Priority: explicit path > eqcalc.yaml > eqcalc.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"eqcalc.yaml", "eqcalc.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load merges configuration from defaults, an optional config file,
// EQCALC_-prefixed environment variables and explicitly set CLI flags,
// in increasing order of precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"precision":       DefaultPrecision,
		"format":          DefaultFormat,
		"verbose":         false,
		"history.enabled": true,
		"history.path":    DefaultHistoryPath(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, if present.
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment variables: EQCALC_HISTORY_PATH -> history.path.
	if err := k.Load(env.Provider("EQCALC_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "EQCALC_")), "_", ".",
		)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, highest priority. Only flags the user actually set are
	// loaded, so defaults here never mask file or env values.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "."), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = used

	if err := validateFormat(cfg.Format); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateFormat(format string) error {
	switch format {
	case "auto", "text", "json":
		return nil
	}
	return fmt.Errorf("invalid output format %q (want auto, text or json)", format)
}
