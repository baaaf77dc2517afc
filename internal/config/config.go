package config

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/soyunomas/dupr/internal/report"
)

// EnvPrefix es el prefijo de las variables de entorno (DUPR_MIN_SIZE -> min-size).
const EnvPrefix = "DUPR_"

// Config agrupa todas las opciones de una ejecución.
type Config struct {
	NoEmpty   bool     `koanf:"noempty"`
	Summary   bool     `koanf:"summary"`
	ShowSize  bool     `koanf:"size"`
	SameLine  bool     `koanf:"sameline"`
	Separator string   `koanf:"separator"`
	Quiet     bool     `koanf:"quiet"`
	JSON      bool     `koanf:"json"`
	MinSize   uint64   `koanf:"min-size"`
	Excludes  []string `koanf:"exclude"`
	Jobs      int      `koanf:"jobs"`
	Seed      uint64   `koanf:"seed"`
	Verbose   int      `koanf:"verbose"`
	LogFile   string   `koanf:"log"`
}

// Defaults devuelve los valores por defecto.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"separator": report.DefaultSeparator,
		"exclude":   []string{},
		"jobs":      0,
		"seed":      0,
	}
}

// Load combina, en orden de prioridad creciente: defaults, archivo YAML (si path no está vacío),
// variables de entorno DUPR_* y los flags modificados en la línea de comandos.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, errors.Wrap(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}
