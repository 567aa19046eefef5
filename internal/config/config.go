package config

import "os"

// Config holds all environment-backed settings
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	Port      string
	JWTSecret string
}

// Load reads configuration from the environment, falling back to local
// development defaults
func Load() *Config {
	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "rentiva"),
		RedisAddr: getEnv("REDIS_URI", "localhost:6379"),
		Port:      getEnv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
