// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import "time"

// Config holds the NATS connection settings
type Config struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Timeout applies to connecting and to KV operations
	Timeout time.Duration `yaml:"timeout"`
	// MaxReconnect is the number of reconnect attempts, -1 for unlimited
	MaxReconnect int `yaml:"max_reconnect"`
	// ReconnectWait is the pause between reconnect attempts
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
	// CredentialsFile is an optional NATS user credentials file
	CredentialsFile string `yaml:"credentials_file"`
	// CreateBucket creates the decisions KV bucket when it does not exist
	CreateBucket bool `yaml:"create_bucket"`
}
