package cli

import (
	"os"

	"github.com/pkg/browser"
)

// Opener output would otherwise land on stdout and corrupt --json results.
func init() {
	browser.Stdout = os.Stderr
}

// openInBrowser hands link to the platform URL handler.
func openInBrowser(link string) error {
	return browser.OpenURL(link)
}
