package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

// Backend describes the zoo behavior API this dashboard is a client of.
type Backend struct {
	BaseURL        string        `mapstructure:"baseUrl" yaml:"baseUrl" validate:"required|fullUrl"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout" yaml:"requestTimeout" validate:"required|min:1"`
	Timezone       string        `yaml:"timezone" validate:"required"`
}

// Auth holds backend credentials for unattended (kiosk) mode.
// Empty credentials disable auto-login; the operator uses the login form.
type Auth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type PollingConfig struct {
	AlertsInterval   time.Duration `mapstructure:"alertsInterval" yaml:"alertsInterval" validate:"required|min:1"`
	BehaviorInterval time.Duration `mapstructure:"behaviorInterval" yaml:"behaviorInterval" validate:"required|min:1"`
	HistoryDays      int           `mapstructure:"historyDays" yaml:"historyDays" validate:"required|min:1"`
}

type Persistence struct {
	FilePath     string        `mapstructure:"filePath" yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `mapstructure:"saveInterval" yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Backend     Backend       `yaml:"backend"`
	Auth        Auth          `yaml:"auth"`
	Polling     PollingConfig `yaml:"polling"`
	WebServer   Server        `mapstructure:"webServer" yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
