// Package config provides configuration management for the catalog service.
//
// It loads an optional .env file with godotenv, then lets Viper resolve every
// key from the environment, falling back to the `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, environment, body limit, shutdown deadline
//   - Database: driver (mysql, sqlite) and connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Files: accepted extensions per file kind, image size cap, public prefix
//   - Auth: issuer, audience, base64 signing key and refresh token pepper, lifetimes
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
