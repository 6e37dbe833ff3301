// Package worker forwards saved simulation results to the configured
// spreadsheet sink.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"biglabo/internal/amqp"
	"biglabo/internal/configstore"
	"biglabo/internal/core"
	"biglabo/internal/sheets"
)

// SyncWorker consumes saved-configuration messages, recomputes the report
// from the stored record and appends the result rows to the sink.
type SyncWorker struct {
	configs configstore.Store
	results sheets.ResultWriter
}

func NewSyncWorker(configs configstore.Store, results sheets.ResultWriter) *SyncWorker {
	return &SyncWorker{
		configs: configs,
		results: results,
	}
}

// HandleConfigSaved processes a single saved-configuration message.
func (w *SyncWorker) HandleConfigSaved(ctx context.Context, msg *amqp.ConfigSavedMessage) error {
	slog.InfoContext(ctx, "Processing config saved message",
		"ref", msg.Ref,
		"name", msg.Name)

	saved, err := w.configs.Load(ctx, msg.Ref)
	if err != nil {
		return fmt.Errorf("load configuration %s: %w", msg.Ref, err)
	}

	rows := w.computeRows(saved)
	if err := w.results.AppendResults(ctx, saved.Name, rows); err != nil {
		return fmt.Errorf("append results for %s: %w", msg.Ref, err)
	}
	return nil
}

// computeRows replays the stored record onto a fresh store so the exported
// figures always come from the saved state, not the live session.
func (w *SyncWorker) computeRows(saved configstore.SavedConfig) []core.ResultRow {
	s := core.NewStore()
	s.Import(saved.Record)
	return core.ResultRows(s)
}
