package cli

import (
	"io"

	apperrors "github.com/agbru/cicalc/internal/errors"
	"github.com/agbru/cicalc/internal/ui"
)

// CLIColorProvider implements apperrors.ColorProvider using the active theme.
type CLIColorProvider struct{}

// Red returns the error color.
func (CLIColorProvider) Red() string { return ui.ColorError() }

// Yellow returns the warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorWarning() }

// Reset returns the reset code.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// HandleError prints err with the CLI colors and returns the exit code.
func HandleError(err error, out io.Writer) int {
	return apperrors.HandleCalculationError(err, out, CLIColorProvider{})
}
