// Package config loads the immutable service configuration. Everything
// that used to be ambient state (SMTP settings, the submission window,
// privileged-user allowlists) is read once at startup and passed into
// constructors explicitly.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type SMTP struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	AdminEmail string `mapstructure:"admin_email"`
}

// Window is a daily wall-clock interval in which task submission is
// allowed, in "15:04" notation.
type Window struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Contains reports whether the wall-clock time of t falls inside the
// window, boundaries included. A malformed window allows everything.
func (w Window) Contains(t time.Time) bool {
	start, err1 := time.Parse("15:04", w.Start)
	end, err2 := time.Parse("15:04", w.End)
	if err1 != nil || err2 != nil {
		return true
	}
	minutes := t.Hour()*60 + t.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	return minutes >= startMin && minutes <= endMin
}

// SpecialUsers lists user ids allowed to self-register without an
// invitation for the privileged roles.
type SpecialUsers struct {
	Managers  []string `mapstructure:"managers"`
	Reviewers []string `mapstructure:"reviewers"`
}

func (s SpecialUsers) Allows(userID, role string) bool {
	var pool []string
	switch role {
	case "manager":
		pool = s.Managers
	case "reviewer":
		pool = s.Reviewers
	default:
		return false
	}
	for _, id := range pool {
		if id == userID {
			return true
		}
	}
	return false
}

type Config struct {
	DBPath     string       `mapstructure:"db_path"`
	ReportsDir string       `mapstructure:"reports_dir"`
	Listen     string       `mapstructure:"listen"`
	SMTP       SMTP         `mapstructure:"smtp"`
	Submission Window       `mapstructure:"submission"`
	Special    SpecialUsers `mapstructure:"special_users"`
}

// Load reads configuration from the given YAML file (optional) with
// TED_* environment overrides and built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("db_path", "ted.db")
	v.SetDefault("reports_dir", "reports")
	v.SetDefault("listen", ":8080")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("submission.start", "09:00")
	v.SetDefault("submission.end", "19:30")

	v.SetEnvPrefix("TED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}
