// Package cli provides the command-line interface for the curbside application.
package cli

import (
	"github.com/curbside-tools/lexington/internal/app"
	"github.com/spf13/cobra"
)

// SetApp stores the Application for commands to access
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	globalApp = a
}

// GetApp retrieves the Application
func GetApp() *app.Application {
	return globalApp
}

// Global reference - temporary until full context passing is implemented
var globalApp *app.Application
