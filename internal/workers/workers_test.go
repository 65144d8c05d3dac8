// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
)

// recordingWorker appends its lifecycle events to a shared log.
type recordingWorker struct {
	id     string
	events *[]string
}

func (r *recordingWorker) Start(context.Context) { *r.events = append(*r.events, "start "+r.id) }
func (r *recordingWorker) Stop()                 { *r.events = append(*r.events, "stop "+r.id) }

func TestWorkers_StartAndStopOrder(t *testing.T) {
	var events []string
	ws := &Workers{workers: []Worker{
		&recordingWorker{id: "a", events: &events},
		&recordingWorker{id: "b", events: &events},
	}}

	ws.Start(context.Background())
	ws.Stop()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}

	assert.NotPanics(t, func() {
		ws.Start(context.Background())
		ws.Stop()
	})
}

func TestNewWorkers_ContainsImageCleanup(t *testing.T) {
	ws := NewWorkers(&service.Services{}, config.Workers{}, logger.Nop())

	require.Len(t, ws.workers, 1)
	assert.IsType(t, &ImageCleanupJob{}, ws.workers[0])
}
