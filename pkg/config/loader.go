package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".gitgat"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for gitgat settings.
const envPrefix = "GITGAT"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars and defaults.
// If configPath is non-empty it must exist. Otherwise .gitgat.yaml is looked
// up in the working directory and then $HOME, and a missing file is not an
// error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("exclude", []string{})

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.no_color", DefaultOutputNoColor)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.json", DefaultLoggingJSON)

	viperCfg.SetDefault("progress.enabled", DefaultProgressEnabled)

	viperCfg.SetDefault("telemetry.otlp_endpoint", DefaultTelemetryOTLPEndpoint)
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultTelemetryOTLPInsecure)
	viperCfg.SetDefault("telemetry.otlp_headers", DefaultTelemetryOTLPHeaders)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultTelemetrySampleRatio)
	viperCfg.SetDefault("telemetry.trace_verbose", DefaultTelemetryTraceVerbose)
	viperCfg.SetDefault("telemetry.debug_trace", DefaultTelemetryDebugTrace)
	viperCfg.SetDefault("telemetry.metrics_file", DefaultTelemetryMetricsFile)
}
