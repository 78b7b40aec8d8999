// Package config loads typed configuration structs from the environment.
//
// Structs declare their settings with `env` and `envDefault` tags (parsed by
// github.com/caarlos0/env); a .env file, when present, is loaded once via
// github.com/joho/godotenv before the first parse. Each config type is
// parsed exactly once per process and cached, so packages can load their own
// config independently without re-reading the environment.
package config
