package notify

import (
	"io"
	"os"

	"github.com/fadilarbi/todo-offline/internal/api/metrics"
)

// TerminalBeeper plays the critical-deadline alert by writing BEL to a
// terminal. Write failures propagate to the caller, which logs and moves on.
type TerminalBeeper struct {
	Out io.Writer
}

// NewTerminalBeeper returns a beeper writing to stdout.
func NewTerminalBeeper() *TerminalBeeper {
	return &TerminalBeeper{Out: os.Stdout}
}

func (b *TerminalBeeper) Beep() error {
	if _, err := b.Out.Write([]byte("\a")); err != nil {
		return err
	}
	metrics.NotificationsSentTotal.WithLabelValues("beep").Inc()
	return nil
}
