package config

// FeedConfig configures the sighting-feed consumer.  None of the database
// variables are needed.
type FeedConfig struct {
	Env      string // application environment; "dev" selects console logs
	LogLevel string // zap level name
	Path     string // file the feed lines are appended to
	AMQPURL  string // broker to consume from
}

// LoadFeedConfig reads APP_ENV, LOG_LEVEL, SIGHTING_FEED_PATH and the broker
// URL.
func LoadFeedConfig() FeedConfig {
	return FeedConfig{
		Env:      envStr("APP_ENV", "prod"),
		LogLevel: envStr("LOG_LEVEL", "info"),
		Path:     envStr("SIGHTING_FEED_PATH", "logs/sightings.log"),
		AMQPURL:  AMQPURL(),
	}
}
