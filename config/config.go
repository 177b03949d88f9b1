package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string `mapstructure:"port"`
	AIProvider         string `mapstructure:"ai_provider"`
	AIEndpoint         string `mapstructure:"ai_endpoint"`
	Model              string `mapstructure:"model"`
	OpenAIAPIKey       string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys      string `mapstructure:"GEMINI_API_KEYS"`
	MongoDBURI         string `mapstructure:"MONGODB_URI"`
	UploadDir          string `mapstructure:"upload_dir"`
	LargeFileThreshold int    `mapstructure:"large_file_threshold"`
	QueryChunkSize     int    `mapstructure:"query_chunk_size"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("ai_provider", "openai")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("large_file_threshold", 500000)
	v.SetDefault("query_chunk_size", 20000)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")
	v.BindEnv("MONGODB_URI")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
