package worker

import (
	"context"
	"testing"
	"time"

	"biglabo/internal/amqp"
	"biglabo/internal/configstore"
	"biglabo/internal/core"
	"biglabo/internal/sheets/memory"
)

func TestHandleConfigSaved(t *testing.T) {
	ctx := context.Background()
	configs := configstore.NewMemoryStore()
	sink := memory.New()
	w := NewSyncWorker(configs, sink)

	s := core.NewStore()
	if err := s.Set("inc_manage", 5000000); err != nil {
		t.Fatalf("set: %v", err)
	}
	saved, err := configs.Save(ctx, "plan-a", s.Export("tester", time.Now()))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	msg := amqp.NewConfigSavedMessage(saved.Ref, saved.Name)
	if err := w.HandleConfigSaved(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	blocks := sink.Blocks()
	if len(blocks) != 1 || blocks[0].Name != "plan-a" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	want := 2*len(core.CategoryKeys()) + 3
	if len(blocks[0].Rows) != want {
		t.Fatalf("rows: expected %d, got %d", want, len(blocks[0].Rows))
	}

	// The exported figures must reflect the saved record, not the defaults.
	replay := core.NewStore()
	replay.Import(saved.Record)
	if got, _ := replay.Get("inc_manage"); got != 5000000 {
		t.Fatalf("saved record lost the edited value: %d", got)
	}
}

func TestHandleConfigSavedUnknownRef(t *testing.T) {
	w := NewSyncWorker(configstore.NewMemoryStore(), memory.New())
	msg := amqp.NewConfigSavedMessage("missing", "x")
	if err := w.HandleConfigSaved(context.Background(), msg); err == nil {
		t.Fatalf("expected error for unknown ref")
	}
}
