// Package config loads application configuration from, in precedence order,
// environment variables (CARSEARCH_ prefix), an optional YAML file, and
// built-in defaults. A .env file in the working directory is folded into the
// environment first, so local development needs no exported variables.
package config
