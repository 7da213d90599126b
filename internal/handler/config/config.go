package config

type Config struct {
	ServerAddr string `yaml:"server_addr"`
}
