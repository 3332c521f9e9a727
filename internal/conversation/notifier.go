package conversation

import (
	"context"
	"fmt"
	"os"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// PrintFunc prints one line of user-facing text. Matches the styled
// helpers on display.UI.
type PrintFunc func(text string)

// CLINotifier writes notifications through the terminal UI.
type CLINotifier struct {
	log    *logger.Logger
	info   PrintFunc
	urgent PrintFunc
}

// NewCLINotifier creates a notifier. Nil print functions fall back to
// stdout for info and stderr for urgent messages.
func NewCLINotifier(log *logger.Logger, info, urgent PrintFunc) *CLINotifier {
	if info == nil {
		info = func(text string) { fmt.Fprintln(os.Stdout, text) }
	}
	if urgent == nil {
		urgent = func(text string) { fmt.Fprintln(os.Stderr, text) }
	}
	return &CLINotifier{log: log, info: info, urgent: urgent}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.info(message)
	return nil
}

// NotifyUrgent prints an error-slot message.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.urgent(message)
	return nil
}
