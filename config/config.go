// Package config gathers snippet compiler settings from a YAML file, .env
// files and SNIPPET_* environment variables.  Later sources override earlier
// ones field by field: defaults, file, environment, command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/panyam/snippet/decl"
)

const EnvPrefix = "SNIPPET_"

// Server is the HTTP API section.
type Server struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Addr is host:port.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Config struct {
	Options decl.Options `yaml:"options,omitempty"`
	Server  Server       `yaml:"server,omitempty"`

	// debug, info, warn or error
	LogLevel string `yaml:"log_level,omitempty"`

	// Parallel compiles for batch runs
	Workers int `yaml:"workers,omitempty"`
}

func Defaults() Config {
	return Config{
		Options:  decl.DefaultOptions(),
		Server:   Server{Host: "localhost", Port: 8080},
		LogLevel: "info",
		Workers:  4,
	}
}

// LoadYAML parses raw YAML, or the file at path when raw is empty.  Unknown
// keys are rejected.
func LoadYAML(path string, raw []byte) (Config, error) {
	var cfg Config
	if len(raw) == 0 {
		if path == "" {
			return cfg, errors.New("no config source provided")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		raw = data
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies every non-zero field of over to base.
func Merge(base, over Config) Config {
	out := base
	out.Options = base.Options.Merge(over.Options)
	if strings.TrimSpace(over.Server.Host) != "" {
		out.Server.Host = strings.TrimSpace(over.Server.Host)
	}
	if over.Server.Port != 0 {
		out.Server.Port = over.Server.Port
	}
	if strings.TrimSpace(over.LogLevel) != "" {
		out.LogLevel = strings.TrimSpace(over.LogLevel)
	}
	if over.Workers != 0 {
		out.Workers = over.Workers
	}
	return out
}

// EnvOverlay builds an override from SNIPPET_* entries of environ (as
// returned by os.Environ).  Unknown keys are ignored.
func EnvOverlay(environ []string) (Config, error) {
	var over Config
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		val = strings.TrimSpace(val)
		var err error
		switch strings.TrimPrefix(key, EnvPrefix) {
		case "TARGET":
			over.Options.Target = val
		case "JSX":
			over.Options.JSX, err = strconv.ParseBool(val)
		case "JSX_FACTORY":
			over.Options.JSXFactory = val
		case "JSX_FRAGMENT":
			over.Options.JSXFragment = val
		case "VUE_VERSION":
			over.Options.VueVersion, err = strconv.Atoi(val)
		case "FRAMEWORK_MODULE":
			over.Options.FrameworkModule = val
		case "CONSTRUCTOR":
			over.Options.Constructor = val
		case "HOST":
			over.Server.Host = val
		case "PORT":
			over.Server.Port, err = strconv.Atoi(val)
		case "LOG_LEVEL":
			over.LogLevel = val
		case "WORKERS":
			over.Workers, err = strconv.Atoi(val)
		}
		if err != nil {
			return over, fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return over, nil
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are skipped, variables already set are kept.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("No env file", "file", f)
				continue
			}
			return fmt.Errorf("loading env file %s: %w", f, err)
		}
		slog.Debug("Loaded env file", "file", f)
	}
	return nil
}

// Load resolves the full configuration: defaults, then the YAML file at path
// (if path is not empty), then the environment.
func Load(path string, environ []string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		fileCfg, err := LoadYAML(path, nil)
		if err != nil {
			return cfg, err
		}
		cfg = Merge(cfg, fileCfg)
	}
	env, err := EnvOverlay(environ)
	if err != nil {
		return cfg, err
	}
	return Merge(cfg, env), nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
