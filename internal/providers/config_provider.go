package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"slbstore/internal/structures"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SLBSTORE_LOG_LEVEL")
	viper.BindEnv("persistence.driver", "SLBSTORE_STORAGE_DRIVER")
	viper.BindEnv("persistence.filePath", "SLBSTORE_IMAGE_PATH")
	viper.BindEnv("persistence.saveInterval", "SLBSTORE_SAVE_INTERVAL")
	viper.BindEnv("metrics.enabled", "SLBSTORE_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if conf.Persistence.Driver == "" {
		conf.Persistence.Driver = "file"
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SpaceXLaunchBot DataStore"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
