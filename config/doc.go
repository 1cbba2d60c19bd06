// Package config loads cpiscope settings with viper.
//
// Values come from built-in defaults, an optional YAML file (./cpiscope.yaml
// or an explicit path) and CPISCOPE_* environment variables, in increasing
// order of precedence. Command-line flags are applied on top by the CLI.
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	opts, err := cfg.AnalysisOptions()
package config
