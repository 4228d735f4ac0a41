// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// KVBucketNameDecisions is the name of the KV bucket holding the decision state.
	KVBucketNameDecisions = "decisions"

	// KVKeyState holds the full decision document
	KVKeyState = "state"
	// KVKeyExport holds the rendered tabular export
	KVKeyExport = "export"
)

// File backend names, relative to the data directory
const (
	StateFileName  = "dados.json"
	ExportFileName = "decisoes.csv"
)
