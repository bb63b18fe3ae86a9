package services

import (
	"context"
	"encoding/json"

	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/store"
)

// GetSettings loads the global settings record through the repository.
// Absent or unreachable both fall back to the defaults, so callers always
// get a usable value to thread through their call chain.
func GetSettings(ctx context.Context) models.SystemSettings {
	data := store.ReadRaw(ctx, store.SettingsKey)
	if data == nil {
		return models.DefaultSettings()
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings dual-writes the global settings record under its fixed key.
func SaveSettings(ctx context.Context, settings models.SystemSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	store.WriteRaw(ctx, store.SettingsKey, data)
	return nil
}
