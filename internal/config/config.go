package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type Config struct {
	Places Places
	Mail   Mail

	// File holds the optional config.json overrides (email settings, batch
	// ZIP list, keyword overrides).
	File FileConfig
}

type FileConfig struct {
	EmailSettings EmailSettings `json:"email_settings"`
	ZipCodes      ZipCodes      `json:"zip_codes"`
	Keywords      []string      `json:"keywords"`
}

type EmailSettings struct {
	Enabled         bool   `json:"enabled"`
	Recipient       string `json:"recipient" validate:"omitempty,email"`
	Sender          string `json:"sender"`
	SenderEmail     string `json:"sender_email" validate:"omitempty,email"`
	SubjectTemplate string `json:"subject_template"`
}

type ZipCodes struct {
	EnabledZipCodes []string `json:"enabled_zip_codes"`
}

func Load() (Config, error) {
	return LoadFrom("config.json")
}

func LoadFrom(configPath string) (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if config.Places.APIKey == "" {
		config.Places.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	}

	fileConfig, err := loadFileConfig(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("loadFileConfig: %w", err)
	}
	config.File = fileConfig

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("validator.Struct: %w", err)
	}

	return config, nil
}

// loadFileConfig reads config.json; a missing file is not an error, the
// defaults apply.
func loadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var fileConfig FileConfig
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return FileConfig{}, fmt.Errorf("json.Unmarshal %s: %w", path, err)
	}

	return fileConfig, nil
}
