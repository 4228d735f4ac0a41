// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the decision service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "decision"
)

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvNATSCredentials is the environment variable for NATS credentials
	EnvNATSCredentials = "NATS_CREDENTIALS"
	// EnvConfigFile points to an optional YAML configuration file
	EnvConfigFile = "CONFIG_FILE"
	// EnvPort is the HTTP listen port
	EnvPort = "PORT"
	// EnvStorage selects the decision state backend
	EnvStorage = "DECISION_STORAGE"
	// EnvPublisher selects the event publisher backend
	EnvPublisher = "DECISION_PUBLISHER"
	// EnvDataDir is the directory holding the state file and its export
	EnvDataDir = "DATA_DIR"
	// EnvSharedPassword is the single credential every member logs in with
	EnvSharedPassword = "SHARED_PASSWORD"
	// EnvCORSAllowedOrigins is a comma separated list of allowed origins
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	// EnvAuthSource selects the login strategy
	EnvAuthSource = "AUTH_SOURCE"
	// EnvNATSTimeout is the NATS connect and request timeout
	EnvNATSTimeout = "NATS_TIMEOUT"
	// EnvNATSMaxReconnect is the number of NATS reconnect attempts
	EnvNATSMaxReconnect = "NATS_MAX_RECONNECT"
	// EnvNATSReconnectWait is the pause between NATS reconnect attempts
	EnvNATSReconnectWait = "NATS_RECONNECT_WAIT"
	// EnvNATSCreateBucket creates the KV bucket at startup when missing
	EnvNATSCreateBucket = "NATS_CREATE_BUCKET"
)

// Authentication sources
const (
	// AuthSourceSharedPassword checks every login against one shared password
	AuthSourceSharedPassword = "shared-password"
	// AuthSourceMock accepts every login, for local development only
	AuthSourceMock = "mock"
)

// Publisher sources
const (
	// PublisherNATS publishes decision events on NATS
	PublisherNATS = "nats"
	// PublisherMock records events in memory and logs them
	PublisherMock = "mock"
	// PublisherNone disables event publishing
	PublisherNone = "none"
)
