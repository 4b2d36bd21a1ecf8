package constants

import "time"

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// Priority represents how urgent a task is. Higher values are more urgent.
type Priority int

// TaskStatus represents where a task sits in the GTD workflow
type TaskStatus string

const (
	AppName            = "tempo"
	EnvPrefix          = "TEMPO"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tempo/tempo.db"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tempo-"
	BackupFileSuffix = ".db"

	// Watch constants
	DefaultWatchCron     = "0 7 * * 1-5"
	WatchLockfileName    = "tempo-watch.lock"
	WatchShutdownTimeout = 30 * time.Second

	// Priority constants
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4

	// Task Status constants
	StatusInbox      TaskStatus = "inbox"
	StatusNextAction TaskStatus = "next_action"
	StatusProject    TaskStatus = "project"
	StatusWaiting    TaskStatus = "waiting"
	StatusSomeday    TaskStatus = "someday"
	StatusDone       TaskStatus = "done"

	// DefaultTaskEstimateMin is used when a task carries no positive estimate
	DefaultTaskEstimateMin = 30

	// Conflict Types
	ConflictDuplicateName          ConflictType = "duplicate_name"
	ConflictInvalidDateTime        ConflictType = "invalid_date_time"
	ConflictOverlappingAssignments ConflictType = "overlapping_assignments"
	ConflictOutsideContextWindow   ConflictType = "outside_context_window"
	ConflictExceedsWorkWindow      ConflictType = "exceeds_work_window"
	ConflictFocusInBreak           ConflictType = "focus_in_break"
	ConflictMissingContext         ConflictType = "missing_context"

	// Session States
	StateDay SessionState = iota
	StateTasks
	StateContexts
)
