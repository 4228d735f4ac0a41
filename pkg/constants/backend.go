// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

// Backend constants select the infrastructure behind the storage and publisher ports
const (
	// BackendFile keeps the decision state in a JSON file next to its CSV export
	BackendFile = "file"

	// BackendNATS keeps the decision state in a JetStream key-value bucket
	BackendNATS = "nats"

	// BackendMock keeps everything in memory (testing mode)
	BackendMock = "mock"
)

// ValidateBackend validates that the backend is one of the allowed values
func ValidateBackend(backend string) error {
	switch backend {
	case BackendFile, BackendNATS, BackendMock:
		return nil
	case "":
		return errors.NewValidation("backend is required")
	default:
		return errors.NewValidation(
			fmt.Sprintf("unsupported backend: %s (must be file, nats, or mock)", backend))
	}
}

// ValidBackends returns list of all valid backends for documentation
func ValidBackends() []string {
	return []string{BackendFile, BackendNATS, BackendMock}
}

// BackendDescription returns human-readable description of backend behavior
func BackendDescription(backend string) string {
	switch backend {
	case BackendFile:
		return "Writes dados.json and decisoes.csv atomically to the data directory"
	case BackendNATS:
		return "Stores the decision document and its export in a JetStream KV bucket"
	case BackendMock:
		return "Keeps state in memory only (testing mode)"
	default:
		return "Unknown backend"
	}
}
