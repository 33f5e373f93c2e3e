// Package config provides configuration for the viewkit demo server.
//
// Settings come from three layers, later ones winning: built-in defaults,
// an optional YAML file, and VIEWKIT_ environment variables.
//
// # Configuration File Structure
//
//	server:
//	  addr: ":8080"
//	snapshot:
//	  backend: bolt        # memory, bolt or s3
//	  path: viewkit.db
//	  key: todos
//	log:
//	  level: info          # debug, info, warn or error
//	  format: text         # text or json
//	host:
//	  queueSize: 256
//	metrics:
//	  namespace: viewkit
//	demo:
//	  tick: 1s
//
// # Environment Overrides
//
// Every field has an environment variable named after its path, for
// example VIEWKIT_SERVER_ADDR, VIEWKIT_SNAPSHOT_BACKEND or VIEWKIT_DEMO_TICK.
package config
