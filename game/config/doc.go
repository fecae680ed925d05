// Package config provides process configuration and logging setup for the
// checkers tools.
//
// Settings come from three layers, lowest precedence first:
//   - Built-in defaults (Default)
//   - An optional .env file loaded with godotenv
//   - Environment variables (CHECKERS_LOG_LEVEL, CHECKERS_LOG_FORMAT,
//     CHECKERS_HISTORY_FILE, CHECKERS_SESSION_TTL)
//
// Command-line flags are applied on top by the caller. Every Config is
// validated with go-playground/validator before use.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	logger, err := config.NewLogger(cfg, os.Stderr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	logger.Info("starting", "level", cfg.LogLevel)
package config
