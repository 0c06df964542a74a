// Package validate checks that a profile's credentials are accepted by AWS.
// The external check is an injected capability so tests substitute
// deterministic success or failure.
package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Result is the judgement of one credential check. A failed external call
// is a non-valid Result carrying the diagnostic text, never a fatal error.
type Result struct {
	Valid      bool
	AccountID  string
	Diagnostic string
}

// Validator checks one profile by name.
type Validator interface {
	Validate(ctx context.Context, profileName string) Result
}

// Runner executes the external identity-check command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// CLIValidator shells out to `aws sts get-caller-identity` and parses its
// JSON stdout. The core imposes no timeout of its own; callers bound the
// context if they want one.
type CLIValidator struct {
	Runner Runner
}

// NewCLIValidator returns a validator backed by the real aws binary.
func NewCLIValidator() *CLIValidator {
	return &CLIValidator{Runner: execRunner{}}
}

type callerIdentity struct {
	Account string `json:"Account"`
}

func (v *CLIValidator) Validate(ctx context.Context, profileName string) Result {
	stdout, stderr, err := v.Runner.Run(ctx, "aws",
		"sts", "get-caller-identity",
		"--profile", profileName,
		"--output", "json",
	)
	if err != nil {
		diag := strings.TrimSpace(string(stderr))
		if diag == "" {
			diag = err.Error()
		}
		return Result{Diagnostic: diag}
	}

	var id callerIdentity
	if err := json.Unmarshal(stdout, &id); err != nil || id.Account == "" {
		return Result{
			Diagnostic: fmt.Sprintf("unexpected output from aws sts get-caller-identity: %s", strings.TrimSpace(string(stdout))),
		}
	}
	return Result{Valid: true, AccountID: id.Account}
}
