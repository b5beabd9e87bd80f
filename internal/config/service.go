package config

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	ClientURL   string `yaml:"client_url"`

	// JWTSecret signs and verifies the admin API tokens
	JWTSecret string `yaml:"jwt_secret"`
	// TokenTTLHours bounds the lifetime of issued tokens
	TokenTTLHours int `yaml:"token_ttl_hours"`

	// EncryptionKey protects stored payment method tokens (64 hex chars)
	EncryptionKey string `yaml:"encryption_key"`

	// MockPayments routes card charges to the mock gateway instead of Stripe
	MockPayments    bool   `yaml:"mock_payments"`
	StripeSecretKey string `yaml:"stripe_secret_key"`
}
