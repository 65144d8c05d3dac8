// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ImageCleanupTask is a stored image whose deletion from the image host
// failed and has to be retried by the cleanup worker.
type ImageCleanupTask struct {
	ID        int64     `json:"id"`
	PublicID  string    `json:"public_id"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
