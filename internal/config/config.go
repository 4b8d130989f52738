package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type (
	Config struct {
		Language     string `json:"language"`
		GeminiAPIKey string `json:"gemini_api_key,omitempty"`
		PathFile     string `json:"path_file"`

		RepositoryOwner string `json:"repository_owner,omitempty"`
		RepositoryName  string `json:"repository_name,omitempty"`

		// OAuthClientID es el client id de la app OAuth usada para el device flow.
		OAuthClientID string `json:"oauth_client_id,omitempty"`
		// SyncIntervalSeconds es el período del sync de fondo.
		SyncIntervalSeconds int `json:"sync_interval_seconds,omitempty"`

		GeminiModel string `json:"gemini_model,omitempty"`
	}
)

const (
	defaultLang         = "en"
	defaultSyncInterval = 120
	defaultGeminiModel  = "gemini-1.5-flash"
	defaultOAuthClient  = "Iv1.b507a08c87ecfe98"
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".matereview")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error al crear el directorio de configuración: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error al leer el archivo de configuración: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error al decodificar el archivo JSON: %w", err)
	}
	config.PathFile = configPath

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("la configuración cargada no es válida: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language: defaultLang,
		PathFile: path,
	}
	applyDefaults(config)

	if err := SaveConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.SyncIntervalSeconds <= 0 {
		config.SyncIntervalSeconds = defaultSyncInterval
	}
	if config.GeminiModel == "" {
		config.GeminiModel = defaultGeminiModel
	}
	if config.OAuthClientID == "" {
		config.OAuthClientID = defaultOAuthClient
	}
}

func validateConfig(config *Config) error {
	if config.Language != "en" && config.Language != "es" {
		return fmt.Errorf("idioma '%s' no soportado", config.Language)
	}
	return nil
}

func SaveConfig(config *Config) error {
	if config.PathFile == "" {
		return errors.New("la configuración no tiene ruta de archivo")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error al serializar la configuración: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0755); err != nil {
		return fmt.Errorf("error al crear el directorio de configuración: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error al escribir la configuración: %w", err)
	}

	return nil
}

// DataDir devuelve el directorio donde vive el almacenamiento local durable
// (espejo de PRs, borradores, credencial cifrada).
func (c *Config) DataDir() string {
	return filepath.Dir(c.PathFile)
}
