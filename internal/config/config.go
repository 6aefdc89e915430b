package config

type Config struct {
	Environment Environment
	Log         Log

	API     API     `envPrefix:"ROAMSTOP_"`
	Stripe  Stripe  `envPrefix:"STRIPE_"`
	Session Session `envPrefix:"SESSION_"`
}

type API struct {
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api/v1"`
	// Origin of the public storefront, used to build referral landing links.
	Origin string `env:"ORIGIN" envDefault:"http://localhost:8000"`
}

type Stripe struct {
	BaseApiURL     string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	PublishableKey string `env:"PUBLISHABLE_KEY"`
}

type Session struct {
	Path string `env:"PATH" envDefault:".roamstop/session.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}
