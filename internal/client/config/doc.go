// Package config loads runtime configuration for the assistant CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), usually fed from a .env file.
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-d string   path of the local sqlite database
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8000",
//	  "database_path": "assistant.db",
//	  "request_timeout": "15s",
//	  "upload_timeout": "5m",
//	  "online_check_interval": "3s"
//	}
package config
