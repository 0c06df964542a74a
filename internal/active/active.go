// Package active resolves which profile a shell session currently uses and
// computes switch intents. It only ever reads the environment; the actual
// assignment happens in the invoking shell via the directive line.
package active

import (
	"fmt"
	"os"

	"github.com/user/awsp/internal/profile"
	"github.com/user/awsp/internal/shell"
)

// ProfileEnvVar names the active profile for AWS tooling.
const ProfileEnvVar = "AWS_PROFILE"

// Environ is the environment-lookup capability. It is injected so tests
// don't have to mutate the real process environment.
type Environ interface {
	LookupEnv(key string) (string, bool)
}

// OSEnviron reads the real process environment.
type OSEnviron struct{}

func (OSEnviron) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Getter resolves profile names; satisfied by *profile.Store.
type Getter interface {
	Get(name string) (profile.Profile, error)
}

// Resolver answers "which profile is active" and validates switch targets.
type Resolver struct {
	store Getter
	env   Environ
}

// NewResolver builds a resolver. A nil env falls back to the process
// environment.
func NewResolver(store Getter, env Environ) *Resolver {
	if env == nil {
		env = OSEnviron{}
	}
	return &Resolver{store: store, env: env}
}

// Current returns the active profile name. An unset variable means no
// active profile, not an error.
func (r *Resolver) Current() (string, bool) {
	name, ok := r.env.LookupEnv(ProfileEnvVar)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// SwitchIntent checks that name resolves to an existing profile and returns
// the mutation the enclosing shell must perform. The resolver persists
// nothing.
func (r *Resolver) SwitchIntent(name string) (Intent, error) {
	if _, err := r.store.Get(name); err != nil {
		return Intent{}, err
	}
	// The directive is evaluated by the shell wrapper; a name that shell
	// syntax can act on must never reach it.
	if !shell.IsSafeName(name) {
		return Intent{}, fmt.Errorf("profile name %q contains shell metacharacters", name)
	}
	return Intent{Profile: name}, nil
}

// Intent describes an environment mutation for the caller's shell.
type Intent struct {
	Profile string
}

// Directive renders the one shell-evaluable line for the given dialect.
func (i Intent) Directive(d shell.Dialect) string {
	return shell.ExportLine(d, i.Profile)
}

// Description renders the human-readable confirmation text.
func (i Intent) Description() string {
	return fmt.Sprintf("Switched to profile: %s", i.Profile)
}
