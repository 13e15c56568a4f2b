package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set with -ldflags "-X github.com/agbru/cicalc/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// HasVersionFlag reports whether args request the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the program version.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "cicalc %s\n", Version)
	if Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", Commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", BuildDate)
	}
	fmt.Fprintf(out, "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
