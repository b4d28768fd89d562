package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Publication rate label constants.
const (
	HealthyValue  = "Healthy"  // Healthy value
	LaggingValue  = "Lagging"  // Lagging value
	StalledValue  = "Stalled"  // Stalled value
	InactiveValue = "Inactive" // Inactive value
)

// Color variables for console output.
var (
	HealthyColor  = color.New(color.FgGreen)           // most commits reach the registry
	LaggingColor  = color.New(color.FgYellow)          // a noticeable share is never published
	StalledColor  = color.New(color.FgRed, color.Bold) // publication mostly failing
	InactiveColor = color.New(color.FgHiBlack)         // nothing was built
)

// GetPlainRateLabel returns a plain text label for a weekly publication rate.
// Weeks without builds are Inactive regardless of the rate.
func GetPlainRateLabel(built int, rate float64) string {
	switch {
	case built == 0:
		return InactiveValue
	case rate >= 90:
		return HealthyValue
	case rate >= 50:
		return LaggingValue
	default:
		return StalledValue
	}
}

// GetColorRateLabel returns a colored rate label for console output (table).
func GetColorRateLabel(built int, rate float64) string {
	text := GetPlainRateLabel(built, rate)

	switch text {
	case HealthyValue:
		return HealthyColor.Sprint(text)
	case LaggingValue:
		return LaggingColor.Sprint(text)
	case StalledValue:
		return StalledColor.Sprint(text)
	default:
		return InactiveColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
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
