package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"zoodash/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("backend.baseUrl", "ZOODASH_BACKEND_URL")
	viper.BindEnv("auth.username", "ZOODASH_USERNAME")
	viper.BindEnv("auth.password", "ZOODASH_PASSWORD")
	viper.BindEnv("logger.level", "ZOODASH_LOG_LEVEL")
	viper.BindEnv("polling.alertsInterval", "ZOODASH_ALERTS_INTERVAL")
	viper.BindEnv("polling.behaviorInterval", "ZOODASH_BEHAVIOR_INTERVAL")
	viper.BindEnv("persistence.saveInterval", "ZOODASH_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "ZOODASH_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ZOODASH_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ZooBehaviorDashboard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
