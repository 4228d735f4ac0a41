// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// Session is an authenticated member's context, created at login and
// discarded at logout.
type Session struct {
	Token     string    `json:"token"`
	Member    string    `json:"member"`
	CreatedAt time.Time `json:"created_at"`
}
