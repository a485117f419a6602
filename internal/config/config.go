package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Database   `yaml:"database"`
	Redis      `yaml:"redis"`
	Esewa      `yaml:"esewa"`
	Admin      `yaml:"admin"`
	Kafka      `yaml:"kafka"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage selects the backend holding the events slot and the admin flag.
type Storage struct {
	Driver   string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Key      string `yaml:"key" env-default:"events"`
	Dir      string `yaml:"dir" env:"STORAGE_DIR" env-default:"./data"`
	SeedPath string `yaml:"seed_path" env:"STORAGE_SEED_PATH"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"event_ticketing"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env-default:"ticketing:"`
}

// Esewa defaults point at the public sandbox (EPAYTEST).
type Esewa struct {
	MerchantID string `yaml:"merchant_id" env:"ESEWA_MERCHANT_ID" env-default:"EPAYTEST"`
	SecretKey  string `yaml:"secret_key" env:"ESEWA_SECRET_KEY" env-default:"8gBm/:&EnhH.1/q"`
	BaseURL    string `yaml:"base_url" env:"ESEWA_BASE_URL" env-default:"https://rc-epay.esewa.com.np"`
	SuccessURL string `yaml:"success_url" env:"ESEWA_SUCCESS_URL" env-default:"http://localhost:8080/payment/success"`
	FailureURL string `yaml:"failure_url" env:"ESEWA_FAILURE_URL" env-default:"http://localhost:8080/payment/failure"`
}

type Admin struct {
	Username string `yaml:"username" env:"ADMIN_USERNAME" env-default:"admin"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-default:"admin123"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"event-snapshots"`
}

func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}
