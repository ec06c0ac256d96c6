// Package config loads runtime configuration for the contactdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the contacts service
//	-t int      request timeout (seconds)
//	-d string   path of the credential database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:5000",
//	  "request_timeout": "10s",
//	  "credential_db": "contactdesk.db"
//	}
package config
