// Package notify delivers desktop notifications. Delivery is
// fire-and-forget: callers log failures and move on.
package notify

import (
	"time"

	"github.com/gen2brain/beeep"
)

// Desktop sends system notifications through the OS notification
// service.
type Desktop struct {
	timeout time.Duration
}

// NewDesktop returns a desktop notifier announcing itself under the
// given application name.
func NewDesktop(appName string, timeout time.Duration) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Desktop{timeout: timeout}
}

// Notify shows one notification. The display duration is decided by the
// desktop environment; the configured timeout is advisory only.
func (d *Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Nop is a notifier that discards everything, for runs with
// notifications disabled and for tests.
type Nop struct{}

func (Nop) Notify(title, body string) error { return nil }
