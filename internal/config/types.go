package config

// Config is the root configuration structure for lockrelay.
// Serialised to ~/.lockrelay/config.json.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	GitHub   GitHubConfig   `mapstructure:"github"   json:"github"`
	Telegram TelegramConfig `mapstructure:"telegram" json:"telegram"`
	Server   ServerConfig   `mapstructure:"server"   json:"server"`
	Reminder ReminderConfig `mapstructure:"reminder" json:"reminder"`
}

// DatabaseConfig controls the storage backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "mysql".
	Driver string `mapstructure:"driver" json:"driver"`
	// Path is the SQLite file path (expanded at runtime).
	Path string `mapstructure:"path"   json:"path"`
	// DSN is the MySQL data source name (used when Driver == "mysql").
	DSN string `mapstructure:"dsn"    json:"dsn"`
}

// GitHubConfig holds the push-webhook shared secret.
type GitHubConfig struct {
	// WebhookSecret signs inbound push events (x-hub-signature-256).
	WebhookSecret string `mapstructure:"webhook_secret" json:"webhook_secret"`
}

// TelegramConfig holds bot API credentials.
type TelegramConfig struct {
	// Token is the bot API token used for outbound sendMessage calls.
	Token string `mapstructure:"token" json:"token"`
	// WebhookSecret is the shared token Telegram echoes back in
	// x-telegram-bot-api-secret-token on every update delivery.
	WebhookSecret string `mapstructure:"webhook_secret" json:"webhook_secret"`
}

// ServerConfig controls the relay HTTP listener.
type ServerConfig struct {
	// Port is the HTTP port the relay listens on (default: 8090).
	Port int `mapstructure:"port" json:"port"`
}

// ReminderConfig controls the optional open-lock digest.
type ReminderConfig struct {
	// Schedule is a robfig/cron expression ("@every 6h", "0 9 * * *", ...).
	// Empty disables the digest.
	Schedule string `mapstructure:"schedule" json:"schedule"`
}
