package ports

// Recorder receives business events for metrics.
type Recorder interface {
	StageChanged(stage string, value bool)
	NotificationSent(channel string, ok bool)
	CascadeApplied(kind string, rows int64)
	ConsistencyChecked(orphaned, inconsistent, duplicates int)
}
