// Package config provides configuration loading and validation for the
// engine and the programs embedding it.
//
// It uses Viper to load configuration from a YAML file, layered with
// environment variables (optionally from a .env file via godotenv).
// Explicit file paths can be given through loader options; otherwise
// standard locations are searched.
//
// # Usage
//
//	var cfg config.Config
//	if err := config.Load("taskgraph", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
