// Package config loads the bridge configuration.
//
// Configuration comes from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults
//  2. An optional YAML overlay file named by MCP_BRIDGE_CONFIG
//  3. Environment variables
//
// The environment variable names match the surrounding deployment
// (MANUALMIND_API_URL, API_TIMEOUT, MAX_RETRIES, MANUALMIND_API_KEY,
// RATE_LIMIT_PER_MINUTE, MCP_RUN_MODE, MCP_HTTP_PORT, MCP_HTTP_API_KEY,
// LOG_LEVEL, LOG_FORMAT).
//
// Load is called once at process start; the resulting Config is immutable
// and passed explicitly into component constructors. Backend endpoint paths
// are part of the configuration because backend variants disagree on the
// document-processing path (/process vs /process-documents):
//
//	endpoints:
//	  query: /query
//	  status: /status
//	  process: /process
//
// Malformed values (non-integer ports, unknown run modes, bad URLs) fail
// Load with a descriptive error; the process exits non-zero only for
// startup problems like these, never for protocol traffic.
package config
