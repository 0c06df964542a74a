// Package shell knows the per-dialect syntax for switching the active
// profile. A child process cannot mutate its parent shell's environment, so
// switching is done by emitting a line the shell's own wrapper function
// evaluates.
package shell

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect is a supported shell flavor.
type Dialect string

const (
	Bash Dialect = "bash"
	Zsh  Dialect = "zsh"
	Fish Dialect = "fish"
)

// ErrUnknownDialect is returned for shells the tool has no hook for.
var ErrUnknownDialect = errors.New("unknown shell dialect")

// ParseDialect validates a user-supplied shell name.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Bash, Zsh, Fish:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("%w: %s (supported: bash, zsh, fish)", ErrUnknownDialect, s)
	}
}

// IsSafeName reports whether a profile name can be embedded in an
// ExportLine without the shell interpreting it. The directive is evaluated
// by the wrapper function, so characters that stay active inside double
// quotes ($, backquote, backslash) and the quote/newline characters
// themselves are rejected.
func IsSafeName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "\"'$`\\\n")
}

// ExportLine returns the single shell-evaluable line that assigns
// AWS_PROFILE. The exact text is a compatibility surface: wrapper functions
// installed by earlier releases eval it verbatim.
func ExportLine(d Dialect, name string) string {
	if d == Fish {
		return fmt.Sprintf("set -gx AWS_PROFILE %q", name)
	}
	return fmt.Sprintf("export AWS_PROFILE=%q", name)
}

// InitScript returns the wrapper function users install in their shell rc
// file. The wrapper evaluates the directive output of `switch --shell-mode`
// in the invoking shell's own context.
func InitScript(d Dialect) string {
	switch d {
	case Fish:
		return `function awsp
    if test (count $argv) -ge 2; and test "$argv[1]" = switch
        command awsp switch $argv[2] >/dev/null; and set -gx AWS_PROFILE $argv[2]
    else
        command awsp $argv
    end
end`
	default:
		return `awsp() {
    if [ "$1" = "switch" ] && [ -n "$2" ]; then
        eval "$(command awsp switch "$2" --shell-mode)"
    else
        command awsp "$@"
    fi
}`
	}
}
