package config

import (
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"lms/package/logger"
)

type Config struct {
	IsDebug *bool         `yaml:"is_debug" env:"IS_DEBUG" env-default:"true"`
	Listen  Listener      `yaml:"listen"`
	Storage StorageConfig `yaml:"storage"`
	JWT     JWTConfig     `yaml:"jwt"`
}

type Listener struct {
	Type   string `yaml:"type" env-default:"tcp"`
	BindIp string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env:"PORT" env-default:"8000"`
}

type StorageConfig struct {
	Host           string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Database       string `yaml:"database" env:"DB_NAME" env-default:"lms"`
	Username       string `yaml:"username" env:"DB_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"DB_PASSWORD"`
	MaxOpenConns   int    `yaml:"max_open_conns" env-default:"10"`
	MaxIdleConns   int    `yaml:"max_idle_conns" env-default:"5"`
	Migrate        bool   `yaml:"migrate" env:"DB_MIGRATE" env-default:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	AccessTTLHours  int    `yaml:"access_ttl_hours" env-default:"1"`
	RefreshTTLHours int    `yaml:"refresh_ttl_hours" env-default:"168"`
}

var instance *Config
var once sync.Once

func GetConfig() *Config {
	once.Do(func() {
		logger.Log.Info("Reading app configuration")
		instance = &Config{}
		if err := cleanenv.ReadConfig("config.yml", instance); err != nil {
			help, _ := cleanenv.GetDescription(instance, nil)
			logger.Log.Error(help)
			logger.Log.Fatal(err)
		}
	})
	return instance
}
