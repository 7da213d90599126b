package config

import "time"

type Config struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
	// размер страницы при загрузке справочников целиком
	ListSize int `yaml:"list_size"`
}
