package profile

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/user/awsp/internal/awsfile"
	"github.com/user/awsp/internal/logging"
)

// Store is the per-invocation view of the two AWS shared files, merged by
// profile name. It is constructed fresh for each command, mutations persist
// to disk before returning, and nothing survives the invocation except the
// files themselves.
type Store struct {
	credPath   string
	configPath string

	cred *ini.File
	conf *ini.File

	order    []string
	profiles map[string]Profile
}

// NewStore loads a store from the default AWS file locations.
func NewStore() (*Store, error) {
	credPath, err := awsfile.DefaultCredentialsPath()
	if err != nil {
		return nil, err
	}
	configPath, err := awsfile.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(credPath, configPath)
}

// NewStoreAt loads a store from explicit file paths.
func NewStoreAt(credPath, configPath string) (*Store, error) {
	s := &Store{credPath: credPath, configPath: configPath}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load parses both files and merges them by name. Listing order is the
// config file's section order, with credentials-only profiles appended in
// their own file order.
func (s *Store) load() error {
	cred, err := awsfile.Load(s.credPath)
	if err != nil {
		return err
	}
	conf, err := awsfile.Load(s.configPath)
	if err != nil {
		return err
	}
	s.cred, s.conf = cred, conf

	merged := make(map[string]*Profile)
	var order []string

	for _, sec := range conf.Sections() {
		name, ok := awsfile.ProfileName(sec.Name())
		if !ok {
			continue
		}
		p, seen := merged[name]
		if !seen {
			p = &Profile{Name: name}
			merged[name] = p
			order = append(order, name)
		}
		p.Region = keyValue(sec, "region")
		p.Output = keyValue(sec, "output")
		p.SSOStartURL = keyValue(sec, "sso_start_url")
		p.SSORegion = keyValue(sec, "sso_region")
		p.SSOAccountID = keyValue(sec, "sso_account_id")
		p.SSORoleName = keyValue(sec, "sso_role_name")
	}

	for _, sec := range cred.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		name := sec.Name()
		p, seen := merged[name]
		if !seen {
			p = &Profile{Name: name}
			merged[name] = p
			order = append(order, name)
		}
		// Identity fields come from the credentials file only; the config
		// file never overrides them.
		p.AccessKeyID = keyValue(sec, "aws_access_key_id")
		p.SecretAccessKey = keyValue(sec, "aws_secret_access_key")
		p.SessionToken = keyValue(sec, "aws_session_token")
	}

	s.profiles = make(map[string]Profile, len(merged))
	s.order = s.order[:0]
	for _, name := range order {
		p := merged[name]
		hasIAM := p.AccessKeyID != ""
		hasSSO := p.SSOStartURL != ""
		switch {
		case hasIAM && hasSSO:
			return fmt.Errorf("%w: %s", ErrAmbiguousProfile, name)
		case hasIAM:
			p.Kind = KindIAM
		case hasSSO:
			p.Kind = KindSSO
		default:
			logging.Warn("skipping profile with neither credentials nor SSO configuration", "profile", name)
			continue
		}
		s.profiles[name] = *p
		s.order = append(s.order, name)
	}
	return nil
}

// keyValue reads a key without materializing it. ini's Key() creates
// missing keys, and the store saves the same ini.File it read: a created
// empty key would leak into untouched sections on the next persist.
func keyValue(sec *ini.Section, name string) string {
	if !sec.HasKey(name) {
		return ""
	}
	return sec.Key(name).String()
}

// List returns all profiles in listing order. An empty store yields an
// empty slice.
func (s *Store) List() []Profile {
	out := make([]Profile, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.profiles[name])
	}
	return out
}

// Get returns the profile with the given name.
func (s *Store) Get(name string) (Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return p, nil
}

// Has reports whether a profile with the given name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.profiles[name]
	return ok
}

// Add validates the record, writes its sections into both files and
// persists them. The name must not collide with any existing profile,
// regardless of variant. If persisting either file fails the operation is
// failed as a whole and the in-memory state is reloaded from disk.
func (s *Store) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := s.profiles[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrProfileExists, p.Name)
	}

	switch p.Kind {
	case KindIAM:
		sec := s.cred.Section(p.Name)
		sec.Key("aws_access_key_id").SetValue(p.AccessKeyID)
		sec.Key("aws_secret_access_key").SetValue(p.SecretAccessKey)
		if p.SessionToken != "" {
			sec.Key("aws_session_token").SetValue(p.SessionToken)
		}
		if p.Region != "" || p.Output != "" {
			s.setConfigSettings(p)
		}
	case KindSSO:
		sec := s.conf.Section(awsfile.ConfigSection(p.Name))
		sec.Key("sso_start_url").SetValue(p.SSOStartURL)
		sec.Key("sso_region").SetValue(p.SSORegion)
		sec.Key("sso_account_id").SetValue(p.SSOAccountID)
		sec.Key("sso_role_name").SetValue(p.SSORoleName)
		if p.Region != "" {
			sec.Key("region").SetValue(p.Region)
		}
		if p.Output != "" {
			sec.Key("output").SetValue(p.Output)
		}
	}

	if err := s.persist(); err != nil {
		return err
	}

	s.profiles[p.Name] = p
	s.order = append(s.order, p.Name)
	return nil
}

func (s *Store) setConfigSettings(p Profile) {
	sec := s.conf.Section(awsfile.ConfigSection(p.Name))
	if p.Region != "" {
		sec.Key("region").SetValue(p.Region)
	}
	if p.Output != "" {
		sec.Key("output").SetValue(p.Output)
	}
}

// Remove deletes the profile's sections from both files and persists them.
// It never touches the AWS_PROFILE environment variable, even when the
// removed profile is the active one: a child process has no authority over
// its parent shell's environment.
func (s *Store) Remove(name string) error {
	if _, ok := s.profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	s.cred.DeleteSection(name)
	s.conf.DeleteSection(awsfile.ConfigSection(name))

	if err := s.persist(); err != nil {
		return err
	}

	delete(s.profiles, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// persist writes the credentials file first, then the config file. Each
// write is atomic on its own, but the pair is not one transaction: a crash
// between the two writes can leave the files referencing different profile
// sets. Accepted for a single-user local tool.
func (s *Store) persist() error {
	if err := awsfile.SaveAtomic(s.credPath, s.cred); err != nil {
		s.revert()
		return fmt.Errorf("failed to save credentials file: %w", err)
	}
	if err := awsfile.SaveAtomic(s.configPath, s.conf); err != nil {
		s.revert()
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// revert re-reads the on-disk state after a failed persist so the store
// does not present uncommitted mutations.
func (s *Store) revert() {
	if err := s.load(); err != nil {
		logging.Error("failed to reload profile files after write error", "error", err)
	}
}
