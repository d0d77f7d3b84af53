// Package store persists the declarative timeline objects the resolver is
// fed from, and watches them for changes so the view can re-resolve.
package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes where object documents live on disk.
type Config interface {
	BasePath() string
}

// LoadConfig reads the .timescope config (yaml implicit) from the current
// directory or $TIMESCOPE_CONFIG_PATH, with TIMESCOPE_* env overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.timescope.db")
	viper.SetConfigName(".timescope")
	viper.SetEnvPrefix("TIMESCOPE")
	viper.AutomaticEnv()

	if override := os.Getenv("TIMESCOPE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}
	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// StaticConfig pins the store to a fixed path, bypassing viper. Tests and the
// --path flag use this.
func StaticConfig(path string) Config {
	return &fileConfig{Path: path}
}
