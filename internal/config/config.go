package config

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	LogLevel       string
	Port           string
	DBType         string
	DBDSN          string
	FileUsers      string
	FileItems      string
	AuthServiceURL string
	DevToken       string

	// Point reward table, injected into the ledger at startup.
	HabitReward      int
	TaskRewardLow    int
	TaskRewardMedium int
	TaskRewardHigh   int
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:              getEnv("APP_ENV", "development"),
			LogLevel:         getEnv("LOG_LEVEL", "info"),
			Port:             getEnv("PORT", "8088"),
			DBType:           getEnv("STORAGE_BACKEND", "file"),
			DBDSN:            getEnv("POSTGRES_DSN", ""),
			FileUsers:        getEnv("USERS_FILE", "data/users.json"),
			FileItems:        getEnv("ITEMS_FILE", "data/items.json"),
			AuthServiceURL:   getEnv("AUTH_SERVICE_URL", ""),
			DevToken:         getEnv("DEV_TOKEN", "MOCK-TOKEN"),
			HabitReward:      getEnvInt("HABIT_REWARD", 5),
			TaskRewardLow:    getEnvInt("TASK_REWARD_LOW", 10),
			TaskRewardMedium: getEnvInt("TASK_REWARD_MEDIUM", 20),
			TaskRewardHigh:   getEnvInt("TASK_REWARD_HIGH", 30),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileUsers == "" || c.FileItems == "") {
		return errors.New("File storage requires USERS_FILE and ITEMS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if c.HabitReward <= 0 || c.TaskRewardLow <= 0 || c.TaskRewardMedium <= 0 || c.TaskRewardHigh <= 0 {
		return errors.New("point rewards must be positive")
	}
	if !(c.TaskRewardLow < c.TaskRewardMedium && c.TaskRewardMedium < c.TaskRewardHigh) {
		return errors.New("task rewards must increase with priority")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
