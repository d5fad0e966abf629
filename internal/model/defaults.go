package model

import "time"

// Shared defaults used by both the client and backend binaries.
const (
	AppName    = "TUYA Fast-Data"
	AppVersion = "1.0.0"

	DefaultBackendURL     = "http://localhost:8000"
	DefaultUploadPath     = "/test"
	DefaultDataPath       = "/data/responses"
	DefaultUploadSource   = "tuya-frontend"
	DefaultUploadTimeout  = 60 * time.Second
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultNotifyDuration = 3 * time.Second
	DefaultWelcomeTimeout = 2 * time.Second
	DefaultHealthRetries  = 3
	DefaultBackendPort    = 8000

	// Preference keys.
	PrefSidebarCollapsed = "sidebarCollapsed"
	PrefCurrentSection   = "currentSection"
)
