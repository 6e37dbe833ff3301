package services

import (
	"context"
	"fmt"
	"log/slog"

	"biglabo/internal/amqp"
	"biglabo/internal/configstore"
	"biglabo/internal/core"
)

// ConfigService orchestrates saved-configuration operations across the
// configuration store and the optional AMQP sync pipeline.
type ConfigService struct {
	store      configstore.Store
	amqpClient *amqp.Client
}

func NewConfigService(store configstore.Store, amqpClient *amqp.Client) *ConfigService {
	return &ConfigService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// SaveConfiguration persists the record and, when a queue is configured,
// publishes a sync notification. Publish failures never fail the save.
func (s *ConfigService) SaveConfiguration(ctx context.Context, name string, rec core.Record) (configstore.SavedConfig, error) {
	saved, err := s.store.Save(ctx, name, rec)
	if err != nil {
		return configstore.SavedConfig{}, fmt.Errorf("save configuration: %w", err)
	}

	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping sync message", "ref", saved.Ref)
		return saved, nil
	}
	if err := s.amqpClient.PublishConfigSaved(ctx, saved.Ref, saved.Name); err != nil {
		slog.ErrorContext(ctx, "Failed to publish config saved message",
			"ref", saved.Ref, "error", err)
		// Don't fail the request - the configuration is saved locally
	}

	return saved, nil
}

// ListConfigurations returns every saved record in save order.
func (s *ConfigService) ListConfigurations(ctx context.Context) ([]configstore.SavedConfig, error) {
	return s.store.List(ctx)
}

// LoadConfiguration fetches one saved record by reference.
func (s *ConfigService) LoadConfiguration(ctx context.Context, ref string) (configstore.SavedConfig, error) {
	return s.store.Load(ctx, ref)
}

// Close closes both the store and the AMQP connection.
func (s *ConfigService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close config service: %v", errs)
	}
	return nil
}
