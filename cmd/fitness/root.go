package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings is shared by every command so flags can override environment
// variables through viper.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Fitness tracker API",
	Long: `Fitness tracker keeps users, their workouts, the exercises inside each
workout, and their meals behind a JSON HTTP API.

CONFIGURATION:

  Settings come from the environment, optionally via a .env file in the
  working directory.

  APP_ENV                dev or prod (default dev)
  HTTP_ADDR              listen address (default :8000)
  DB_DRIVER              sqlite or postgres (default sqlite)
  DB_PATH                sqlite file (default fitness_tracker.db)
  DB_DSN                 full connection string, overrides the DB_* parts
  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE, DB_TIMEZONE
  CORS_ALLOWED_ORIGINS   comma separated (default *)
  FRONTEND_URL           appended to the allowed origins
  RATE_LIMIT_RPM         requests per minute, 0 disables (default 0)

QUICK START:

  $ fitness serve
  $ fitness serve --addr :9000
  $ fitness healthcheck --url http://localhost:8000`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
