package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	MySQL struct {
		DSN string `yaml:"dsn"`
	} `yaml:"mysql"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`
	// Worker is the generation backend. An empty addr switches the pipeline
	// into deterministic fallback mode (no network calls).
	Worker struct {
		Addr            string `yaml:"addr"`
		PollIntervalSec int    `yaml:"poll_interval_sec"`
		PollTimeoutMin  int    `yaml:"poll_timeout_min"`
	} `yaml:"worker"`
	MinIO struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"minio"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads the YAML config file and applies environment overrides.
// A .env file next to the binary is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	overrideString(&cfg.Server.Port, "AIDA_SERVER_PORT")
	overrideString(&cfg.MySQL.DSN, "AIDA_MYSQL_DSN")
	overrideString(&cfg.Redis.Addr, "AIDA_REDIS_ADDR")
	overrideString(&cfg.Redis.Password, "AIDA_REDIS_PASSWORD")
	overrideString(&cfg.Worker.Addr, "AIDA_WORKER_ADDR")
	overrideString(&cfg.MinIO.Endpoint, "AIDA_MINIO_ENDPOINT")
	overrideString(&cfg.MinIO.AccessKey, "AIDA_MINIO_ACCESS_KEY")
	overrideString(&cfg.MinIO.SecretKey, "AIDA_MINIO_SECRET_KEY")
	overrideString(&cfg.MinIO.Bucket, "AIDA_MINIO_BUCKET")
	overrideString(&cfg.Log.Level, "AIDA_LOG_LEVEL")

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Worker.PollIntervalSec <= 0 {
		cfg.Worker.PollIntervalSec = 3
	}
	if cfg.Worker.PollTimeoutMin <= 0 {
		cfg.Worker.PollTimeoutMin = 30
	}
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
