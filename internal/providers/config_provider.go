package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
	"github.com/spf13/viper"
)

const AppName = "MoltbotAnalytics"

func setDefaults(v *viper.Viper) {
	v.SetDefault("reddit.baseUrl", "https://www.reddit.com")
	v.SetDefault("reddit.userAgent", "MoltbotAnalytics/1.0")
	v.SetDefault("reddit.subreddits", []string{"clawdbot", "moltbot", "moltbothub", "moltbothq", "moltbotcommunity"})
	v.SetDefault("reddit.hotLimit", 100)

	v.SetDefault("github.baseUrl", "https://api.github.com")
	v.SetDefault("github.repo", "anthropics/claude-code")

	v.SetDefault("http.timeout", 10*time.Second)

	v.SetDefault("persistence.dataFile", "data.json")
	v.SetDefault("persistence.historyFile", "history.json")
	v.SetDefault("persistence.historyLimit", 1000)

	v.SetDefault("publisher.enabled", true)
	v.SetDefault("publisher.repoDir", ".")

	v.SetDefault("location.name", "GMT+8")
	v.SetDefault("location.utcOffset", 8*time.Hour)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "MOLTBOT_LOG_LEVEL")
	v.BindEnv("logger.dir", "MOLTBOT_LOG_DIR")
	v.BindEnv("github.repo", "MOLTBOT_GITHUB_REPO")
	v.BindEnv("persistence.dataFile", "MOLTBOT_DATA_FILE")
	v.BindEnv("persistence.historyFile", "MOLTBOT_HISTORY_FILE")
	v.BindEnv("persistence.archiveDir", "MOLTBOT_ARCHIVE_DIR")
	v.BindEnv("publisher.enabled", "MOLTBOT_PUBLISH")
	v.BindEnv("metrics.enabled", "MOLTBOT_METRICS_ENABLED")
	v.BindEnv("metrics.textfilePath", "MOLTBOT_METRICS_TEXTFILE")

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
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

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	conf.NoPush = flags.NoPush

	return &conf, nil
}
