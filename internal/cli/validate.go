package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// validateGlobalFlags validates flags shared by every command
func validateGlobalFlags() error {
	// Validate output format
	validOutputs := map[string]bool{
		"human": true,
		"json":  true,
	}
	if !validOutputs[globalFlags.Output] {
		return fmt.Errorf("invalid output format: %s (valid: human, json)", globalFlags.Output)
	}

	// Validate log format
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[globalFlags.LogFormat] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", globalFlags.LogFormat)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
	}
	if !validLogLevels[strings.ToLower(globalFlags.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", globalFlags.LogLevel)
	}

	if globalFlags.Verbose && globalFlags.Quiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}

	return nil
}

// validatePlanFormat validates the format of a written plan file
func validatePlanFormat(format string) error {
	if format != "json" && format != "human" {
		return fmt.Errorf("invalid plan format: %s (valid: json, human)", format)
	}
	return nil
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
