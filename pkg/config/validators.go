package config

// UpdateConfigPayload is the payload for updating runtime settings.
type UpdateConfigPayload struct {
	SyncIntervalMinutes *int  `json:"sync_interval_minutes,omitempty" validate:"omitempty,min=5,max=1440"`
	RemoteSearchEnabled *bool `json:"remote_search_enabled,omitempty"`
}
