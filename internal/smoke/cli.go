package smoke

import "os"

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mergington Activities Smoke Test
================================

Runs the signup/unregister contract against a live server and reports
one line per check.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity used for the round trip (default "Chess Club")
  -email string
        Student email to sign up (default: a fresh smoke-XXXXXXXX@mergington.edu)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every passing check
  -help
        Show this help message

Examples:
  go run ./cmd/smoke -url http://localhost:8080
  go run ./cmd/smoke -activity "Gym Class" -verbose
`)
}
