package engine

// Config is the read-only configuration surface of the engine.
type Config struct {
	UseTransactions           bool     `env:"FSM_USE_TRANSACTIONS" envDefault:"false"`             // UseTransactions wraps mutate/hook/persist in the transaction collaborator.
	LoggingEnabled            bool     `env:"FSM_LOGGING_ENABLED" envDefault:"true"`               // LoggingEnabled gates all audit logging.
	LogFailures               bool     `env:"FSM_LOG_FAILURES" envDefault:"true"`                  // LogFailures gates audit logging of failed attempts.
	ExcludedContextProperties []string `env:"FSM_EXCLUDED_CONTEXT_PROPERTIES" envSeparator:","`    // ExcludedContextProperties lists context fields redacted before logging.
	Debug                     bool     `env:"FSM_DEBUG" envDefault:"false"`                        // Debug enables verbose engine logging.
}

// DefaultConfig mirrors the env defaults for programmatic construction.
func DefaultConfig() Config {
	return Config{
		LoggingEnabled: true,
		LogFailures:    true,
	}
}
