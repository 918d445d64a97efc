package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/coursebay/coursebay-backend/internal/pkg/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		log.Debug("Env var not set, using default", "key", key, "default", defaultVal)
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("Env var is not an integer, using default", "key", key, "value", raw)
		return defaultVal
	}
	return n
}

func GetEnvAsBool(key string, defaultVal bool, log *logger.Logger) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn("Env var is not a bool, using default", "key", key, "value", raw)
		return defaultVal
	}
	return b
}
