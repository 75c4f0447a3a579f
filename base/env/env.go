package env

import (
	"os"
)

// PodName example: settlement-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// ConfigFile is the yaml configuration path, overridable by CONFIG_FILE
func ConfigFile() string {
	return Get("CONFIG_FILE", "infra/configs/config.yaml")
}

// Get returns the environment variable or fallback when it is unset
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
