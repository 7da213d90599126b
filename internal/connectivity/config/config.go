package config

import "time"

type Config struct {
	ProbeInterval time.Duration `yaml:"probe_interval"`
}
