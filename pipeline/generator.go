// Package pipeline contains the content-generation core: pure prompt
// builders, one processor per stage, and the orchestrator that sequences
// stage runs and persists their output.
package pipeline

import (
	"context"
	"encoding/json"

	"aida-server/models"
)

// Generator is the external generation collaborator. A real backend in
// production, absent (nil) in fallback mode. Implementations must not write
// to the project record; persistence belongs to the orchestrator.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request is one generation call.
type Request struct {
	Stage  models.Stage           `json:"stage"`
	Prompt string                 `json:"prompt"`
	Params map[string]interface{} `json:"parameters,omitempty"`
}

// Response carries whatever the backend produced: a structured JSON payload
// (script parts, storyboard), hosted asset files, or both.
type Response struct {
	JSON   json.RawMessage `json:"json,omitempty"`
	Assets []Asset         `json:"assets,omitempty"`
}

type Asset struct {
	Kind        string `json:"kind"`
	URL         string `json:"url"`
	DurationSec int    `json:"durationSec,omitempty"`
}

// StageOutput is a completed stage artifact; StageField names the project
// field it replaces.
type StageOutput interface {
	StageField() string
}

// Processor executes one stage: validate input, check the upstream
// precondition, build the prompt, call the collaborator (or the deterministic
// fallback), shape the output. No persistence side effects.
type Processor interface {
	Stage() models.Stage
	Run(ctx context.Context, project *models.Project, in models.StageInput) (StageOutput, error)
}
