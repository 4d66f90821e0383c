package components

import (
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// Toast is the transient status line at the bottom of the screen
type Toast struct {
	theme   styles.Theme
	message string
	isError bool
}

// NewToast creates an empty toast
func NewToast(theme styles.Theme) Toast {
	return Toast{theme: theme}
}

// SetTheme swaps the palette
func (t *Toast) SetTheme(theme styles.Theme) { t.theme = theme }

// Set shows a message until Clear
func (t *Toast) Set(message string, isError bool) {
	t.message = message
	t.isError = isError
}

// Clear removes the message
func (t *Toast) Clear() {
	t.message = ""
	t.isError = false
}

// View renders the toast, or "" when empty
func (t Toast) View() string {
	if t.message == "" {
		return ""
	}
	if t.isError {
		return t.theme.ErrorText().Render("✗ " + t.message)
	}
	return t.theme.SuccessText().Render("✓ " + t.message)
}
