package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/cpiscope/analysis"
	"github.com/sartorproj/cpiscope/table"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = "cpiscope.yaml"

// Config is the effective cpiscope configuration.
type Config struct {
	Source    string   `mapstructure:"source" yaml:"source"`
	Countries []string `mapstructure:"countries" yaml:"countries"`
	Lag       int      `mapstructure:"lag" yaml:"lag"`
	Mode      string   `mapstructure:"mode" yaml:"mode"`

	// Figures
	OutDir      string `mapstructure:"out_dir" yaml:"out_dir"`
	Interactive bool   `mapstructure:"interactive" yaml:"interactive"`

	// Model reporting
	Summary  bool `mapstructure:"summary" yaml:"summary"`
	Forecast int  `mapstructure:"forecast" yaml:"forecast"`

	// Source parsing
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	SkipRows  int    `mapstructure:"skip_rows" yaml:"skip_rows"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "policy_growth/CPI_data.csv")
	v.SetDefault("countries", []string{"USA", "RUS"})
	v.SetDefault("lag", analysis.DefaultLag)
	v.SetDefault("mode", analysis.FitModel.String())
	v.SetDefault("out_dir", "figures")
	v.SetDefault("interactive", false)
	v.SetDefault("summary", false)
	v.SetDefault("forecast", 0)
	v.SetDefault("delimiter", ",")
	v.SetDefault("skip_rows", 0)
	v.SetDefault("sheet", "")
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// Defaults always decode.
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from defaults, the config file and the
// environment (CPISCOPE_ prefix), later sources taking precedence.
// An explicit cfgFile must exist; the default ./cpiscope.yaml is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CPISCOPE")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cpiscope")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes c as YAML to path, or to DefaultFile when path is empty.
func Save(c *Config, path string) error {
	if path == "" {
		path = DefaultFile
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoaderOptions returns the table loader options described by c.
func (c *Config) LoaderOptions() (*table.Options, error) {
	opts := table.DefaultOptions()
	if c.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Delimiter)
		if size != len(c.Delimiter) || r == utf8.RuneError {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
		}
		opts.Delimiter = r
	}
	if c.SkipRows < 0 {
		return nil, fmt.Errorf("skip_rows must not be negative, got %d", c.SkipRows)
	}
	opts.SkipRows = c.SkipRows
	opts.Sheet = c.Sheet
	return opts, nil
}

// AnalysisOptions returns the analysis options described by c.
func (c *Config) AnalysisOptions() (analysis.Options, error) {
	mode, err := analysis.ParseMode(c.Mode)
	if err != nil {
		return analysis.Options{}, err
	}
	if c.Forecast < 0 {
		return analysis.Options{}, fmt.Errorf("forecast must not be negative, got %d", c.Forecast)
	}
	return analysis.Options{
		Countries: c.Countries,
		Lag:       c.Lag,
		Mode:      mode,
		Summary:   c.Summary,
		Forecast:  c.Forecast,
	}, nil
}
