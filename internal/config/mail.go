package config

type Mail struct {
	CredentialsFile string `env:"GMAIL_CREDENTIALS_FILE" envDefault:"credentials.json"`
	TokenFile       string `env:"GMAIL_TOKEN_FILE" envDefault:"token.json"`
}
