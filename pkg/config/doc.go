// Package config provides configuration management for boolexpr.
//
// Configuration is read from a YAML file, completed with defaults and then
// overridden by environment variables:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("boolexpr.yaml")
//
// Environment variables follow the naming convention BOOLEXPR_SECTION_FIELD.
// For example:
//
//   - BOOLEXPR_PARSER_MAX_DEPTH overrides parser.max_depth
//   - BOOLEXPR_WATCH_DEBOUNCE overrides watch.debounce
//   - BOOLEXPR_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	parser:
//	  max_depth: 256
//
//	reducer:
//	  trace: false
//
//	watch:
//	  debounce: 250ms
//	  extensions: [".sexp"]
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  metrics:
//	    enabled: true
//	    listen_address: "127.0.0.1:9464"
package config
