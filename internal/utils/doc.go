// Package utils exposes reusable helpers consumed by the depdoc commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// environment variables through Viper. LoggerFactory builds zap loggers for
// diagnostics. FlushingWriter keeps watch-mode reports visible as they are written.
package utils
