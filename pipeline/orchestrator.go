package pipeline

import (
	"context"
	"fmt"

	"aida-server/models"
	"aida-server/store"

	"github.com/rs/zerolog"
)

// Orchestrator sequences stage runs for a project: authorize, delegate to
// the stage processor, persist the output as one whole-field replace. It
// performs no recovery beyond the no-partial-write guarantee; every failure
// is surfaced to the caller unchanged in kind and nothing is retried here.
type Orchestrator struct {
	store store.ProjectStore
	procs map[models.Stage]Processor
	log   zerolog.Logger
}

// New builds the orchestrator. A nil gen puts every stage in deterministic
// fallback mode.
func New(st store.ProjectStore, gen Generator, log zerolog.Logger) *Orchestrator {
	procs := map[models.Stage]Processor{}
	for _, p := range []Processor{
		ScriptStage{gen: gen, log: log},
		StoryboardStage{gen: gen},
		ImagesStage{gen: gen},
		VideosStage{gen: gen},
		VoiceoverStage{gen: gen},
		SoundtrackStage{gen: gen},
	} {
		procs[p.Stage()] = p
	}
	return &Orchestrator{store: st, procs: procs, log: log}
}

// ExecuteStage runs one stage for one project and persists its output.
// Concurrent runs of the same stage are not coordinated against each other:
// both will call the collaborator and the last write wins wholesale. That
// race is accepted; see the store's whole-field-replace contract.
func (o *Orchestrator) ExecuteStage(ctx context.Context, projectID string, stage models.Stage, in models.StageInput, callerID string) (*models.Project, StageOutput, error) {
	proc, ok := o.procs[stage]
	if !ok {
		return nil, nil, fmt.Errorf("unknown stage %q: %w", stage, models.ErrInvalidArgument)
	}

	project, err := o.store.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if project.OwnerID != callerID {
		return nil, nil, fmt.Errorf("caller does not own project %s: %w", projectID, models.ErrUnauthorized)
	}

	out, err := proc.Run(ctx, project, in)
	if err != nil {
		return nil, nil, err
	}

	// a cancelled invocation must not write anything
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("stage %s cancelled before persist: %w", stage, err)
	}

	if err := o.store.UpdateField(ctx, projectID, out.StageField(), out); err != nil {
		return nil, nil, err
	}

	updated, err := o.store.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	o.log.Info().
		Str("project_id", projectID).
		Str("stage", string(stage)).
		Msg("stage completed")
	return updated, out, nil
}

// SetStyle validates the style and replaces the project's style wholesale.
// No merge with the prior style ever happens.
func (o *Orchestrator) SetStyle(ctx context.Context, projectID string, style *models.Style, callerID string) (*models.Project, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	if err := o.authorize(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	if err := o.store.UpdateField(ctx, projectID, "style", style); err != nil {
		return nil, err
	}
	return o.store.Get(ctx, projectID)
}

// Complete marks the project completed. Completion is owner-driven only,
// never inferred from which artifacts exist.
func (o *Orchestrator) Complete(ctx context.Context, projectID, callerID string) (*models.Project, error) {
	if err := o.authorize(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	if err := o.store.UpdateField(ctx, projectID, "status", models.ProjectStatusCompleted); err != nil {
		return nil, err
	}
	return o.store.Get(ctx, projectID)
}

func (o *Orchestrator) authorize(ctx context.Context, projectID, callerID string) error {
	project, err := o.store.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != callerID {
		return fmt.Errorf("caller does not own project %s: %w", projectID, models.ErrUnauthorized)
	}
	return nil
}
