package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// UpstreamConfig describes an OpenAI-compatible chat completion endpoint.
type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	App struct {
		Port        string   `mapstructure:"port"`
		Env         string   `mapstructure:"env"`
		LogLevel    string   `mapstructure:"log_level"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Worker struct {
		MetricsPort string `mapstructure:"metrics_port"`
	} `mapstructure:"worker"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Chat        UpstreamConfig `mapstructure:"chat"`
	Recommender UpstreamConfig `mapstructure:"recommender"`
	Courses     struct {
		BaseURL  string        `mapstructure:"base_url"`
		APIKey   string        `mapstructure:"api_key"`
		APIHost  string        `mapstructure:"api_host"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"courses"`
	SMTP struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
		User string `mapstructure:"user"`
		Pass string `mapstructure:"pass"`
		From string `mapstructure:"from"`
	} `mapstructure:"smtp"`
}

// LoadConfig reads config.yaml and .env from the given directories (the
// working directory when none is given) and overlays environment variables.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"app.port":               "APP_PORT",
		"app.env":                "APP_ENV",
		"app.log_level":          "LOG_LEVEL",
		"app.cors_origins":       "CORS_ORIGINS",
		"db.dsn":                 "DB_DSN",
		"redis.addr":             "REDIS_ADDR",
		"redis.password":         "REDIS_PASSWORD",
		"kafka.brokers":          "KAFKA_BROKERS",
		"kafka.group_id":         "KAFKA_GROUP_ID",
		"worker.metrics_port":    "WORKER_METRICS_PORT",
		"auth.jwt_secret":        "JWT_SECRET",
		"auth.token_lifespan":    "TOKEN_LIFESPAN",
		"cloudinary.cloud_name":  "CLOUDINARY_CLOUD_NAME",
		"cloudinary.api_key":     "CLOUDINARY_API_KEY",
		"cloudinary.api_secret":  "CLOUDINARY_API_SECRET",
		"jaeger.otlp_endpoint":   "OTLP_ENDPOINT",
		"chat.base_url":          "CHAT_BASE_URL",
		"chat.api_key":           "CHAT_API_KEY",
		"chat.model":             "CHAT_MODEL",
		"chat.timeout":           "CHAT_TIMEOUT",
		"recommender.base_url":   "RECOMMENDER_BASE_URL",
		"recommender.api_key":    "RECOMMENDER_API_KEY",
		"recommender.model":      "RECOMMENDER_MODEL",
		"recommender.timeout":    "RECOMMENDER_TIMEOUT",
		"courses.base_url":       "COURSES_BASE_URL",
		"courses.api_key":        "COURSES_API_KEY",
		"courses.api_host":       "COURSES_API_HOST",
		"courses.timeout":        "COURSES_TIMEOUT",
		"courses.cache_ttl":      "COURSES_CACHE_TTL",
		"smtp.host":              "SMTP_HOST",
		"smtp.port":              "SMTP_PORT",
		"smtp.user":              "SMTP_USER",
		"smtp.pass":              "SMTP_PASS",
		"smtp.from":              "SMTP_FROM",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.App.CORSOrigins = splitList(cfg.App.CORSOrigins)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("kafka.group_id", "skillfolio-worker")
	v.SetDefault("worker.metrics_port", "9091")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("chat.model", "gpt-4o-mini")
	v.SetDefault("chat.timeout", 20*time.Second)
	v.SetDefault("recommender.model", "gpt-4o-mini")
	v.SetDefault("recommender.timeout", 20*time.Second)
	v.SetDefault("courses.timeout", 20*time.Second)
	v.SetDefault("courses.cache_ttl", time.Hour)
	v.SetDefault("smtp.port", 587)
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
