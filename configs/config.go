package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Vapid struct {
	PublicKey  string
	PrivateKey string
	Subscriber string
}

type Config struct {
	PostgresURI      string
	RedisURI         string
	RedisPassword    string
	TwitterAPIURL    string
	TwitterBearer    string
	FrontendURL      string
	R2               R2
	Vapid            Vapid
	SecretKey        string
	CookieName       string
	PublishRateLimit string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		TwitterAPIURL: getEnv("TWITTER_API_URL", "https://api.twitter.com/2/tweets"),
		TwitterBearer: getEnv("TWITTER_BEARER_TOKEN", ""),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		Vapid: Vapid{
			PublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
			PrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
			Subscriber: getEnv("VAPID_SUBSCRIBER", "mailto:admin@draftwire.app"),
		},
		SecretKey:        getEnv("SECRET_KEY", ""),
		CookieName:       getEnv("COOKIE_NAME", "draftwire_session"),
		PublishRateLimit: getEnv("PUBLISH_RATE_LIMIT", "5/minute"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
