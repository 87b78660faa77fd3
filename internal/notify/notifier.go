// Package notify delivers reminders through the platform notification
// daemon. Delivery is best-effort: when no facility exists the core
// degrades to in-app alerts only.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Notifier is the deferred-notification delivery boundary.
type Notifier interface {
	Send(title, body string) error
	Available() bool
}

// NoopNotifier drops everything; used when notifications are disabled.
type NoopNotifier struct{}

func (NoopNotifier) Send(title, body string) error { return nil }
func (NoopNotifier) Available() bool               { return false }

// ExecNotifier shells out to the platform notification tool. The
// daemon owns presentation and click handling, including focusing the
// application window when the user interacts with a notification.
type ExecNotifier struct{}

func (ExecNotifier) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Available feature-detects the platform tool on PATH.
func (ExecNotifier) Available() bool {
	switch runtime.GOOS {
	case "linux":
		_, err := exec.LookPath("notify-send")
		return err == nil
	case "darwin":
		_, err := exec.LookPath("osascript")
		return err == nil
	default:
		return false
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Detect picks the exec notifier when the platform supports it and the
// noop one otherwise.
func Detect(enabled bool) Notifier {
	if !enabled {
		return NoopNotifier{}
	}
	n := ExecNotifier{}
	if !n.Available() {
		return NoopNotifier{}
	}
	return n
}
