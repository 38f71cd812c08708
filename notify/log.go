package notify

import (
	"context"
	"log/slog"
)

// =============================================================================
// LogNotifier
// =============================================================================

// LogNotifier writes workflow events to a slog logger. Wired alongside
// the remote notifiers when the notify_log setting is enabled, so runs
// leave a local trace even when Slack is unreachable.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs to the given logger.
// If logger is nil, uses the default slog logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{Logger: logger}
}

// Notify implements Notifier. Event severity maps onto the slog level;
// workflow identifiers (run, issue, branch) become log attributes.
func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	level := slog.LevelInfo
	switch event.Severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError, SeverityCritical:
		level = slog.LevelError
	}

	attrs := []any{
		"type", event.Type,
		"run_id", event.RunID,
		"flow_id", event.FlowID,
	}
	if issue, ok := event.Metadata["issue"]; ok {
		attrs = append(attrs, "issue", issue)
	}
	if branch, ok := event.Metadata["branch"]; ok {
		attrs = append(attrs, "branch", branch)
	}

	n.Logger.Log(ctx, level, event.Message, attrs...)
	return nil
}
