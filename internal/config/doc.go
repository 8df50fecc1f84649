// Package config defines the configuration structure for terralift.
//
// Configuration is organized into sections (Server, Agent, Auth) plus the
// stack table. Defaults come from struct tags via creasty/defaults; the
// config file and TERRALIFT_* environment variables layer on top through
// viper.
//
// # Server Configuration
//
//	┌────────────┬─────────┬─────────────────────────────────┐
//	│ Field      │ Default │ Description                     │
//	├────────────┼─────────┼─────────────────────────────────┤
//	│ ServerMode │ "dev"   │ Server mode: "prod" or "dev"    │
//	│ HTTPPort   │ 8000    │ HTTP server listen port         │
//	└────────────┴─────────┴─────────────────────────────────┘
//
// # Agent Configuration
//
//	┌────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field      │ Default │ Description                              │
//	├────────────┼─────────┼──────────────────────────────────────────┤
//	│ NumWorkers │ 3       │ Number of scheduler workers              │
//	│ DataFolder │ ""      │ Status cache DB and managed binaries     │
//	└────────────┴─────────┴──────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌────────────────┬─────────┬──────────────────────────────────────┐
//	│ Field          │ Default │ Description                          │
//	├────────────────┼─────────┼──────────────────────────────────────┤
//	│ Enabled        │ false   │ Require bearer tokens on the API     │
//	│ SecretFilePath │ ""      │ File holding the shared HMAC secret  │
//	└────────────────┴─────────┴──────────────────────────────────────┘
//
// # Stacks
//
// Stacks is a map from action name to StackSpec. Each spec names the root
// module directory, the workspace to operate in, backend config overrides,
// input variables, an optional pinned terraform version and the destroy and
// auto-apply guards. DefaultStack selects which entry the root command form
// targets; Validate rejects a DefaultStack that names no configured stack.
package config
