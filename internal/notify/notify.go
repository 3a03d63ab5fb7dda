// Package notify delivers reminder notifications to the user. The
// scheduler only depends on the Notifier interface; how a notification
// is rendered is the implementation's business.
package notify

import (
	"log"

	"github.com/gen2brain/beeep"
)

type Notifier interface {
	// Notify displays a notification. Fire-and-forget: a non-nil error
	// means the attempt failed, it does not mean the user saw nothing.
	Notify(title, body string) error
}

// Desktop shows native desktop notifications.
type Desktop struct {
	// AppName labels the notification on platforms that support it.
	AppName string
}

func (d *Desktop) Notify(title, body string) error {
	if d.AppName != "" {
		beeep.AppName = d.AppName
	}
	return beeep.Notify(title, body, "")
}

// Logger writes notifications to the standard logger. Useful headless
// and as a fallback when desktop notifications are unavailable.
type Logger struct{}

func (Logger) Notify(title, body string) error {
	log.Printf("[notify] %s: %s", title, body)
	return nil
}

// Func adapts a function to the Notifier interface.
type Func func(title, body string) error

func (f Func) Notify(title, body string) error {
	return f(title, body)
}
