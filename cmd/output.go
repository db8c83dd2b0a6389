package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/plexiform/gdocs-cli/internal/auth"
	"github.com/plexiform/gdocs-cli/internal/google"
)

// Exit codes, stable for scripting: 2 means the user must (re)authorize,
// 3 means Google rejected or failed the request, 4 means bad arguments.
const (
	exitAuthError   = 2
	exitAPIError    = 3
	exitInvalidArgs = 4
)

// exitError carries the process exit code past cobra without printing
// anything more; the JSON envelope has already been emitted.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to serialize result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// emitResult prints a success envelope.
func emitResult(result map[string]any) error {
	printJSON(result)
	return nil
}

// emitError prints an error envelope and returns the matching exit code.
// Authorization problems get the consent URL and instructions so the next
// step is obvious from the output alone.
func emitError(operation string, err error) error {
	var required *auth.RequiredError
	if errors.As(err, &required) {
		printJSON(map[string]any{
			"status":     "error",
			"operation":  operation,
			"error":      "authorization required",
			"error_code": "auth_required",
			"auth_url":   required.AuthURL,
			"instructions": "Open auth_url in a browser, approve access, " +
				"then run: gdocs auth <code>",
		})
		return exitError{code: exitAuthError}
	}

	var apiErr *google.APIError
	if errors.As(err, &apiErr) {
		envelope := map[string]any{
			"status":     "error",
			"operation":  operation,
			"error":      apiErr.Message,
			"error_code": "api_error",
		}
		if apiErr.Status != 0 {
			envelope["http_status"] = apiErr.Status
		}
		printJSON(envelope)
		return exitError{code: exitAPIError}
	}

	printJSON(map[string]any{
		"status":     "error",
		"operation":  operation,
		"error":      err.Error(),
		"error_code": "api_error",
	})
	return exitError{code: exitAPIError}
}

// emitInvalid prints an invalid-arguments envelope.
func emitInvalid(operation, message string) error {
	printJSON(map[string]any{
		"status":     "error",
		"operation":  operation,
		"error":      message,
		"error_code": "invalid_arguments",
	})
	return exitError{code: exitInvalidArgs}
}
