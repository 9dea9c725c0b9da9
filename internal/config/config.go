package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
}

type AppConfig struct {
	Env         string
	SeedCatalog bool
}

type StoreConfig struct {
	DataFile string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CATALOG_SEED", true)
	viper.SetDefault("STORE_DATA_FILE", "farmerhub_users.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		App: AppConfig{
			Env:         viper.GetString("APP_ENV"),
			SeedCatalog: viper.GetBool("CATALOG_SEED"),
		},
		Store: StoreConfig{
			DataFile: viper.GetString("STORE_DATA_FILE"),
		},
	}
}
