package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	SyncSecret    string
	Limitless     LimitlessConfig
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	SyncTopic     string
}

// LimitlessConfig scopes requests to the external tournament source.
type LimitlessConfig struct {
	BaseURL     string
	Game        string
	OrganizerID string
	NameFilter  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
