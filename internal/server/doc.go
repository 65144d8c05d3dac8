// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the application's transport servers.
//
// It starts the HTTP API and the optional gRPC health server, and shuts all
// of them down gracefully once the run context is cancelled or one of them
// fails.
package server
