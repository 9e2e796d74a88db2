package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	JWTSecret   string `env:"JWT_SECRET"`
	JWTIssuer   string `env:"JWT_ISSUER"`
	JWTAudience string `env:"JWT_AUDIENCE"`

	HFAPIToken              string   `env:"HF_API_TOKEN"`
	HFBaseURL               string   `env:"HF_BASE_URL" envDefault:"https://router.huggingface.co"`
	HFModelID               string   `env:"HF_MODEL_ID" envDefault:"Minej/bert-base-personality"`
	HFFallbackModelIDs      []string `env:"HF_FALLBACK_MODEL_IDS" envSeparator:","`
	InferenceTimeoutSeconds int      `env:"INFERENCE_TIMEOUT_SECONDS" envDefault:"30"`

	TextMinWords int    `env:"TEXT_MIN_WORDS" envDefault:"0"`
	SurveyKeying string `env:"SURVEY_KEYING" envDefault:"round_robin"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PredictRateLimit         int `env:"PREDICT_RATE_LIMIT" envDefault:"30"`
	PredictRateWindowMinutes int `env:"PREDICT_RATE_WINDOW_MINUTES" envDefault:"60"`
	StatsCacheTTLSeconds     int `env:"STATS_CACHE_TTL_SECONDS" envDefault:"60"`
}

// InferenceEnabled indica si hay un proveedor externo configurado.
func (c *Config) InferenceEnabled() bool {
	return c.HFAPIToken != "" && c.HFModelID != ""
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
