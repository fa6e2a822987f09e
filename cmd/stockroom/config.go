package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "stockroom"
	configFileType = "yaml"
	envPrefix      = "STOCKROOM"

	cfgKeyRegion      = "region"
	cfgKeyProfile     = "profile"
	cfgKeyEndpoint    = "endpoint"
	cfgKeyTablePrefix = "table_prefix"
	cfgKeyLogLevel    = "log_level"

	defaultTablePrefix = "stockroom_"
	defaultLogLevel    = "info"
)

// settings is the resolved CLI configuration.
type settings struct {
	Region      string
	Profile     string
	Endpoint    string
	TablePrefix string
	LogLevel    slog.Level
}

// loadConfig reads stockroom.yaml from configDir. Environment variables
// prefixed with STOCKROOM_ override the file. A missing file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyTablePrefix, defaultTablePrefix)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// settingsFrom resolves the typed settings from v.
func settingsFrom(v *viper.Viper) (settings, error) {
	s := settings{
		Region:      v.GetString(cfgKeyRegion),
		Profile:     v.GetString(cfgKeyProfile),
		Endpoint:    v.GetString(cfgKeyEndpoint),
		TablePrefix: v.GetString(cfgKeyTablePrefix),
	}
	if err := s.LogLevel.UnmarshalText([]byte(v.GetString(cfgKeyLogLevel))); err != nil {
		return settings{}, fmt.Errorf("%s: %w", cfgKeyLogLevel, err)
	}
	return s, nil
}
