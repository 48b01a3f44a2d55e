package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"aida-server/models"
	"aida-server/pipeline"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkerClient(endpoint string) *WorkerClient {
	return &WorkerClient{
		endpoint:     endpoint,
		http:         &http.Client{Timeout: 5 * time.Second},
		pollInterval: 10 * time.Millisecond,
		pollTimeout:  2 * time.Second,
		log:          zerolog.Nop(),
	}
}

func TestWorkerClientGenerate(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/generate":
			var req pipeline.Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, models.StageScript, req.Stage)
			assert.NotEmpty(t, req.Prompt)
			w.WriteHeader(http.StatusAccepted)
			fmt.Fprint(w, `{"id":"job-1"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/jobs/job-1":
			if polls.Add(1) < 3 {
				fmt.Fprint(w, `{"id":"job-1","status":"running"}`)
				return
			}
			fmt.Fprint(w, `{"id":"job-1","status":"finished","result":{"json":{"parts":[]},"assets":[{"kind":"audio","url":"http://assets.local/v.mp3","durationSec":42}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testWorkerClient(srv.URL)
	resp, err := c.Generate(context.Background(), pipeline.Request{
		Stage:  models.StageScript,
		Prompt: "write something",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"parts":[]}`, string(resp.JSON))
	require.Len(t, resp.Assets, 1)
	assert.Equal(t, "audio", resp.Assets[0].Kind)
	assert.Equal(t, "http://assets.local/v.mp3", resp.Assets[0].URL, "URL kept as-is without an asset store")
	assert.Equal(t, 42, resp.Assets[0].DurationSec)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestWorkerClientGenerateJobFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"id":"job-2"}`)
			return
		}
		fmt.Fprint(w, `{"id":"job-2","status":"failed","error":"model overloaded"}`)
	}))
	defer srv.Close()

	_, err := testWorkerClient(srv.URL).Generate(context.Background(), pipeline.Request{Stage: models.StageImages, Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestWorkerClientGenerateSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testWorkerClient(srv.URL).Generate(context.Background(), pipeline.Request{Stage: models.StageScript, Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestWorkerClientGenerateCancelledWhilePolling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"id":"job-3"}`)
			return
		}
		fmt.Fprint(w, `{"id":"job-3","status":"running"}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testWorkerClient(srv.URL).Generate(ctx, pipeline.Request{Stage: models.StageScript, Prompt: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
