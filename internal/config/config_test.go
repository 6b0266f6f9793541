package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:              "development",
		LogLevel:         "info",
		Port:             "8088",
		DBType:           "file",
		FileUsers:        "data/users.json",
		FileItems:        "data/items.json",
		HabitReward:      5,
		TaskRewardLow:    10,
		TaskRewardMedium: 20,
		TaskRewardHigh:   30,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	c := validConfig()
	c.DBType = "postgres"
	assert.Error(t, c.Validate(), "postgres requires a DSN")
	c.DBDSN = "postgres://localhost/habitquest"
	assert.NoError(t, c.Validate())

	c = validConfig()
	c.FileItems = ""
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Env = "qa"
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Env = "production"
	assert.Error(t, c.Validate(), "production requires an auth service")
	c.AuthServiceURL = "https://auth.internal/validate"
	assert.NoError(t, c.Validate())
}

func TestValidateRewards(t *testing.T) {
	c := validConfig()
	c.HabitReward = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.TaskRewardMedium = 40
	assert.Error(t, c.Validate(), "task rewards must increase with priority")
}
