//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify shows a notification through macOS Notification Center. The icon
// option is ignored; osascript has no way to pass one.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}
