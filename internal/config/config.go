package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"storefront.db"`

	Auth  Auth  `envPrefix:"AUTH_"`
	Store Store `envPrefix:"STORE_"`
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

type Auth struct {
	JWTSecret       string `env:"JWT_SECRET"`
	TokenTTLHours   int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`
	LockoutAttempts int    `env:"LOCKOUT_ATTEMPTS" envDefault:"5"`
	LockoutMinutes  int    `env:"LOCKOUT_MINUTES" envDefault:"15"`
}

type Store struct {
	OrderPrefix string `env:"ORDER_PREFIX" envDefault:"OLK"`
	Currency    string `env:"CURRENCY" envDefault:"NGN"`
}
