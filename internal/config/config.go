package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	// origins allowed to send credentialed requests (the frontend dev servers)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	UploadDir   string `env:"UPLOAD_DIR" envDefault:"uploads"`
	PurchaseDir string `env:"PURCHASE_DIR" envDefault:"purchases"`

	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`
	UploadMaxAge  time.Duration `env:"UPLOAD_MAX_AGE" envDefault:"24h"`

	Meshy Meshy `envPrefix:"MESHY_"`
}

type Meshy struct {
	BaseApiURL      string        `env:"BASE_API_URL" envDefault:"https://api.meshy.ai"`
	APIKey          string        `env:"API_KEY"`
	PollInterval    time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	PollMaxAttempts int           `env:"POLL_MAX_ATTEMPTS" envDefault:"60"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
