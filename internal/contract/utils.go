package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Colors for console output.
var (
	SeasonalColor = color.New(color.FgGreen, color.Bold) // a period was found
	RejectedColor = color.New(color.FgYellow)            // no significant period
	WeakColor     = color.New(color.FgRed)               // residual still autocorrelated
)

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout on error or if no path is provided.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal prints an error message to stderr and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string into a boolean value.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ShortPath returns the base name of path when it is longer than width.
func ShortPath(path string, width int) string {
	if width <= 0 || len(path) <= width {
		return path
	}
	base := filepath.Base(path)
	if len(base) >= width {
		return base
	}
	return "..." + path[len(path)-width+3:]
}
