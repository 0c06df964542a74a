// Package profile models AWS profiles as a tagged union of IAM and SSO
// variants and manages them across the two shared AWS files.
package profile

import "fmt"

// Kind discriminates the two profile variants.
type Kind int

const (
	// KindIAM is a profile authenticated by a long-lived access key pair.
	KindIAM Kind = iota
	// KindSSO is a profile authenticated via a federated single-sign-on flow.
	KindSSO
)

func (k Kind) String() string {
	switch k {
	case KindIAM:
		return "IAM"
	case KindSSO:
		return "SSO"
	default:
		return "unknown"
	}
}

// Profile is a named set of credentials and settings. Exactly one variant's
// field group is populated, selected by Kind; an empty string means the field
// is absent, not set-to-empty.
type Profile struct {
	Name string
	Kind Kind

	// IAM fields, stored in the credentials file.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// SSO fields, stored in the config file.
	SSOStartURL  string
	SSORegion    string
	SSOAccountID string
	SSORoleName  string

	// Settings from the config file, valid for either variant.
	Region string
	Output string
}

// Validate checks the record's shape for its declared variant. It is a pure
// check; the store calls it before any mutation.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile name is empty", ErrInvalidProfile)
	}

	switch p.Kind {
	case KindIAM:
		if p.AccessKeyID == "" || p.SecretAccessKey == "" {
			return fmt.Errorf("%w: IAM profile %q requires aws_access_key_id and aws_secret_access_key", ErrInvalidProfile, p.Name)
		}
	case KindSSO:
		if p.SSOStartURL == "" || p.SSORegion == "" || p.SSOAccountID == "" || p.SSORoleName == "" {
			return fmt.Errorf("%w: SSO profile %q requires sso_start_url, sso_region, sso_account_id and sso_role_name", ErrInvalidProfile, p.Name)
		}
	default:
		return fmt.Errorf("%w: profile %q has unknown kind", ErrInvalidProfile, p.Name)
	}
	return nil
}
