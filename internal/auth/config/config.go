package config

type Config struct {
	Token string `yaml:"token"`
}
