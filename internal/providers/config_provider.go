package providers

import (
	"fmt"
	"path/filepath"
	"sidebard/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("upstream.timeout", 10*time.Second)
	v.SetDefault("upstream.rateLimit", 20)
	v.SetDefault("upstream.burst", 5)
	v.SetDefault("statistics.revalidateAfter", 30*time.Second)
	v.SetDefault("statistics.refreshInterval", 60*time.Second)
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.BindEnv("logger.level", "SIDEBARD_LOG_LEVEL")
	v.BindEnv("upstream.baseUrl", "SIDEBARD_UPSTREAM_URL")
	v.BindEnv("console.owner", "SIDEBARD_OWNER")
	v.BindEnv("cache.enabled", "SIDEBARD_CACHE_ENABLED")
	v.BindEnv("cache.size", "SIDEBARD_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SidebarDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
