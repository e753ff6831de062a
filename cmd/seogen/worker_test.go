package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerjr2/seogen/internal/config"
)

func TestApplyWorkerEnv_FillsZeroFields(t *testing.T) {
	t.Setenv("WORKER_BATCH_LIMIT", "20")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("WORKER_RETRY_LIMIT", "")
	t.Setenv("WORKER_MAX_ATTEMPTS", "")
	t.Setenv("WORKER_STALE_AFTER_MINUTES", "15")

	wc := config.WorkerConfig{}
	require.NoError(t, applyWorkerEnv(&wc))

	assert.Equal(t, 20, wc.BatchLimit)
	assert.Equal(t, 8, wc.Concurrency)
	assert.Equal(t, 0, wc.RetryLimit, "unset env var leaves field zero")
	assert.Equal(t, 15, wc.StaleAfterMinutes)
}

func TestApplyWorkerEnv_ConfigWins(t *testing.T) {
	t.Setenv("WORKER_BATCH_LIMIT", "20")

	wc := config.WorkerConfig{BatchLimit: 7}
	require.NoError(t, applyWorkerEnv(&wc))

	assert.Equal(t, 7, wc.BatchLimit, "config file and flag values take precedence over env")
}

func TestApplyWorkerEnv_InvalidValue(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "many")

	wc := config.WorkerConfig{}
	err := applyWorkerEnv(&wc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "WORKER_CONCURRENCY")
}
