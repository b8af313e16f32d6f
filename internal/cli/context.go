// Package cli provides the command-line interface for the loanrates
// application.
package cli

import (
	"github.com/ratepulse/loanrates/internal/app"
)

// Global application reference shared by commands; set by the root
// command's PersistentPreRunE and cleared after the command finishes.
var globalApp *app.Application

// SetApp stores the Application for commands to access.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the Application.
func GetApp() *app.Application {
	return globalApp
}
