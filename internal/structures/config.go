package structures

import "time"

type RedditConfig struct {
	BaseURL    string   `yaml:"baseUrl" validate:"required|fullUrl"`
	UserAgent  string   `yaml:"userAgent" validate:"required"`
	Subreddits []string `yaml:"subreddits" validate:"required"`
	HotLimit   int      `yaml:"hotLimit" validate:"required|int|min:1|max:100"`
}

type GitHubConfig struct {
	BaseURL string `yaml:"baseUrl" validate:"required|fullUrl"`
	Repo    string `yaml:"repo" validate:"required"`
}

type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type Persistence struct {
	DataFile     string `yaml:"dataFile" validate:"required"`
	HistoryFile  string `yaml:"historyFile" validate:"required"`
	HistoryLimit int    `yaml:"historyLimit" validate:"required|int|min:1"`
	ArchiveDir   string `yaml:"archiveDir"`
}

type PublisherConfig struct {
	Enabled bool   `yaml:"enabled"`
	RepoDir string `yaml:"repoDir" validate:"required"`
	Remote  string `yaml:"remote"`
	Branch  string `yaml:"branch"`
}

// LocationConfig is the fixed offset used for every local-time label.
type LocationConfig struct {
	Name      string        `yaml:"name"`
	UTCOffset time.Duration `yaml:"utcOffset"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir"`
}

type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	TextfilePath string `yaml:"textfilePath"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	NoPush      bool
	Reddit      RedditConfig    `yaml:"reddit"`
	GitHub      GitHubConfig    `yaml:"github"`
	HTTP        HTTPConfig      `yaml:"http"`
	Persistence Persistence     `yaml:"persistence"`
	Publisher   PublisherConfig `yaml:"publisher"`
	Location    LocationConfig  `yaml:"location"`
	Logger      LoggerConfig    `yaml:"logger"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}

// Zone returns the fixed zone local timestamps are rendered in.
func (c *Config) Zone() *time.Location {
	name := c.Location.Name
	if name == "" {
		name = "local"
	}
	return time.FixedZone(name, int(c.Location.UTCOffset.Seconds()))
}
