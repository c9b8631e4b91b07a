package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fentz26/missionctl/internal/seed"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// daemonConfig is resolved from flags, MISSIONCTL_* environment variables and
// ~/.missionctl/config.yaml, in that order of precedence.
type daemonConfig struct {
	Addr   string
	DB     string
	Seed   string
	Strict bool
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".missionctl"
	}
	return filepath.Join(home, ".missionctl")
}

func loadDaemonConfig(cmd *cobra.Command) (*daemonConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())
	v.SetEnvPrefix("MISSIONCTL")
	v.AutomaticEnv()

	for _, name := range []string{"addr", "db", "seed", "strict"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		log.WithField("file", v.ConfigFileUsed()).Debug("loaded config")
	}

	return &daemonConfig{
		Addr:   v.GetString("addr"),
		DB:     v.GetString("db"),
		Seed:   v.GetString("seed"),
		Strict: v.GetBool("strict"),
	}, nil
}

// loadSeed reads the seed at path. Validation problems fail in strict mode and
// are logged otherwise.
func loadSeed(path string, strict bool) (*seed.Seed, error) {
	sd, err := seed.Load(path)
	if err != nil {
		return nil, err
	}
	if err := sd.Validate(); err != nil {
		if strict {
			return nil, err
		}
		log.WithError(err).Warn("seed has integrity problems, continuing")
	}
	return sd, nil
}
