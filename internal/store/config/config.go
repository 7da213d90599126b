package config

type Config struct {
	// пустая строка - журнал отключен
	DBDsn string `yaml:"db_dsn"`
}
