package parameter

import "time"

// Viewport Registry
const (
	// RegistryHeartbeatInterval is how often the local row heartbeat is refreshed
	RegistryHeartbeatInterval = 500 * time.Millisecond

	// RegistryStaleAfter evicts peers whose heartbeat is older than this
	RegistryStaleAfter = 3 * time.Second

	// RegistryPollInterval throttles re-reads of the shared viewport table
	RegistryPollInterval = 100 * time.Millisecond

	// RegistryRetryMin and RegistryRetryMax bound the init retry backoff
	RegistryRetryMin = 250 * time.Millisecond
	RegistryRetryMax = 8 * time.Second

	// RegistryBusyTimeoutMs is the SQLite busy timeout shared by all peers
	RegistryBusyTimeoutMs = 5000
)

// Terminal Viewport
const (
	// CellWidth and CellHeight map one terminal cell to shared-space pixels
	CellWidth  = 8
	CellHeight = 16

	// MoveStep is the viewport origin shift per movement key press in pixels
	MoveStep = 40

	// HUDRows is the number of terminal rows reserved for the status line
	HUDRows = 1
)
