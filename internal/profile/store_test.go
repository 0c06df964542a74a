package profile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/ini.v1"
)

const testCredentials = `[default]
aws_access_key_id = AKIADEFAULT
aws_secret_access_key = defaultsecret

[production]
aws_access_key_id = AKIAPRODUCTION
aws_secret_access_key = productionsecret

[staging]
aws_access_key_id = AKIASTAGING
aws_secret_access_key = stagingsecret
aws_session_token = stagingtoken
`

const testConfig = `[default]
region = us-east-1

[profile production]
region = us-east-1
output = json

[profile staging]
region = us-west-2

[profile sso-profile]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 123456789012
sso_role_name = AdministratorAccess
`

func newTestStore(t *testing.T, credentials, config string) (*Store, string, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "awsp-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	credPath := filepath.Join(tmpDir, "credentials")
	configPath := filepath.Join(tmpDir, "config")

	if credentials != "" {
		if err := os.WriteFile(credPath, []byte(credentials), 0600); err != nil {
			t.Fatalf("failed to write credentials fixture: %v", err)
		}
	}
	if config != "" {
		if err := os.WriteFile(configPath, []byte(config), 0600); err != nil {
			t.Fatalf("failed to write config fixture: %v", err)
		}
	}

	store, err := NewStoreAt(credPath, configPath)
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store, credPath, configPath
}

func TestEmptyStore(t *testing.T) {
	store, _, _ := newTestStore(t, "", "")

	if got := store.List(); len(got) != 0 {
		t.Errorf("expected empty list, got %d profiles", len(got))
	}
}

func TestMergeIAMWithRegion(t *testing.T) {
	store, _, _ := newTestStore(t, testCredentials, testConfig)

	p, err := store.Get("production")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Kind != KindIAM {
		t.Errorf("expected IAM profile, got %s", p.Kind)
	}
	if p.AccessKeyID != "AKIAPRODUCTION" {
		t.Errorf("expected access key from credentials file, got %q", p.AccessKeyID)
	}
	if p.Region != "us-east-1" {
		t.Errorf("expected region us-east-1 from config file, got %q", p.Region)
	}
	if p.Output != "json" {
		t.Errorf("expected output json, got %q", p.Output)
	}
}

func TestSSOOnlyProfile(t *testing.T) {
	store, _, _ := newTestStore(t, testCredentials, testConfig)

	p, err := store.Get("sso-profile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Kind != KindSSO {
		t.Errorf("expected SSO profile, got %s", p.Kind)
	}
	if p.SSOStartURL != "https://example.awsapps.com/start" {
		t.Errorf("unexpected start URL %q", p.SSOStartURL)
	}
	if p.Region != "" {
		t.Errorf("expected no region, got %q", p.Region)
	}
	if p.AccessKeyID != "" {
		t.Errorf("SSO profile should carry no access key, got %q", p.AccessKeyID)
	}
}

func TestListOrder(t *testing.T) {
	// creds-only profile appended after config-file order.
	credentials := testCredentials + `
[creds-only]
aws_access_key_id = AKIACREDSONLY
aws_secret_access_key = credsonlysecret
`
	store, credPath, configPath := newTestStore(t, credentials, testConfig)

	want := []string{"default", "production", "staging", "sso-profile", "creds-only"}
	got := store.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d profiles, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], p.Name)
		}
	}

	// Order is stable across repeated loads of unchanged files.
	for i := 0; i < 3; i++ {
		reloaded, err := NewStoreAt(credPath, configPath)
		if err != nil {
			t.Fatalf("failed to reload store: %v", err)
		}
		for j, p := range reloaded.List() {
			if p.Name != want[j] {
				t.Errorf("reload %d position %d: expected %q, got %q", i, j, want[j], p.Name)
			}
		}
	}
}

func TestGetNotFound(t *testing.T) {
	store, _, _ := newTestStore(t, testCredentials, testConfig)

	_, err := store.Get("nonexistent")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestAddRoundTrip(t *testing.T) {
	store, credPath, configPath := newTestStore(t, "", "")

	added := Profile{
		Name:            "fresh",
		Kind:            KindIAM,
		AccessKeyID:     "AKIAFRESH",
		SecretAccessKey: "freshsecret",
		Region:          "ap-southeast-1",
	}
	if err := store.Add(added); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	reloaded, err := NewStoreAt(credPath, configPath)
	if err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}

	p, err := reloaded.Get("fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AccessKeyID != added.AccessKeyID || p.SecretAccessKey != added.SecretAccessKey {
		t.Errorf("credential fields did not round-trip: %+v", p)
	}
	if p.Region != "ap-southeast-1" {
		t.Errorf("expected region to round-trip, got %q", p.Region)
	}
	// Fields not set read back as absent, not as empty-string keys.
	if p.SessionToken != "" {
		t.Errorf("expected absent session token, got %q", p.SessionToken)
	}
	data, err := os.ReadFile(credPath)
	if err != nil {
		t.Fatalf("failed to read credentials file: %v", err)
	}
	if strings.Contains(string(data), "aws_session_token") {
		t.Error("unset session token written to credentials file")
	}
}

func TestAddSSOWritesConfigOnly(t *testing.T) {
	store, credPath, configPath := newTestStore(t, "", "")

	err := store.Add(Profile{
		Name:         "sso-new",
		Kind:         KindSSO,
		SSOStartURL:  "https://example.awsapps.com/start",
		SSORegion:    "eu-central-1",
		SSOAccountID: "210987654321",
		SSORoleName:  "ReadOnly",
	})
	if err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	confData, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if !strings.Contains(string(confData), "[profile sso-new]") {
		t.Error("config file missing prefixed profile section")
	}

	credData, err := os.ReadFile(credPath)
	if err != nil {
		t.Fatalf("failed to read credentials file: %v", err)
	}
	if strings.Contains(string(credData), "sso-new") {
		t.Error("SSO profile leaked into credentials file")
	}
}

func TestAddThenRemoveRestoresList(t *testing.T) {
	store, _, _ := newTestStore(t, testCredentials, testConfig)

	before := store.List()

	p := Profile{
		Name:            "transient",
		Kind:            KindIAM,
		AccessKeyID:     "AKIATRANSIENT",
		SecretAccessKey: "transientsecret",
	}
	if err := store.Add(p); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := store.Remove("transient"); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}

	after := store.List()
	if len(after) != len(before) {
		t.Fatalf("expected %d profiles after add+remove, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("position %d changed: %+v != %+v", i, before[i], after[i])
		}
	}
}

func TestAddDuplicate(t *testing.T) {
	store, _, _ := newTestStore(t, testCredentials, testConfig)

	err := store.Add(Profile{
		Name:            "production",
		Kind:            KindIAM,
		AccessKeyID:     "AKIAOTHER",
		SecretAccessKey: "othersecret",
	})
	if !errors.Is(err, ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}

	// Existing record is left unmodified.
	p, err := store.Get("production")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AccessKeyID != "AKIAPRODUCTION" {
		t.Errorf("existing record modified by failed add: %q", p.AccessKeyID)
	}
}

func TestAddDuplicateAcrossVariants(t *testing.T) {
	store, _, _ := newTestStore(t, testCredentials, testConfig)

	// Name collision counts regardless of variant.
	err := store.Add(Profile{
		Name:         "production",
		Kind:         KindSSO,
		SSOStartURL:  "https://example.awsapps.com/start",
		SSORegion:    "us-east-1",
		SSOAccountID: "123456789012",
		SSORoleName:  "AdministratorAccess",
	})
	if !errors.Is(err, ErrProfileExists) {
		t.Errorf("expected ErrProfileExists, got %v", err)
	}
}

func TestAddInvalidShape(t *testing.T) {
	store, _, _ := newTestStore(t, "", "")

	err := store.Add(Profile{
		Name:        "broken",
		Kind:        KindIAM,
		AccessKeyID: "AKIABROKEN",
	})
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
	if store.Has("broken") {
		t.Error("invalid profile was committed")
	}
}

func TestRemoveNonexistentLeavesFilesUntouched(t *testing.T) {
	store, credPath, configPath := newTestStore(t, testCredentials, testConfig)

	credBefore, err := os.ReadFile(credPath)
	if err != nil {
		t.Fatalf("failed to read credentials file: %v", err)
	}
	configBefore, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}

	if err := store.Remove("nonexistent"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	credAfter, _ := os.ReadFile(credPath)
	configAfter, _ := os.ReadFile(configPath)
	if !bytes.Equal(credBefore, credAfter) {
		t.Error("credentials file modified by failed remove")
	}
	if !bytes.Equal(configBefore, configAfter) {
		t.Error("config file modified by failed remove")
	}
}

func TestRemoveDeletesBothSections(t *testing.T) {
	store, credPath, configPath := newTestStore(t, testCredentials, testConfig)

	if err := store.Remove("production"); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}

	credData, _ := os.ReadFile(credPath)
	if strings.Contains(string(credData), "[production]") {
		t.Error("credentials section not removed")
	}
	configData, _ := os.ReadFile(configPath)
	if strings.Contains(string(configData), "[profile production]") {
		t.Error("config section not removed")
	}

	// Other profiles survive.
	if _, err := store.Get("staging"); err != nil {
		t.Errorf("unrelated profile lost: %v", err)
	}
}

func TestAmbiguousClassification(t *testing.T) {
	credentials := `[confused]
aws_access_key_id = AKIACONFUSED
aws_secret_access_key = confusedsecret
`
	config := `[profile confused]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 123456789012
sso_role_name = AdministratorAccess
`
	tmpDir, err := os.MkdirTemp("", "awsp-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	credPath := filepath.Join(tmpDir, "credentials")
	configPath := filepath.Join(tmpDir, "config")
	os.WriteFile(credPath, []byte(credentials), 0600)
	os.WriteFile(configPath, []byte(config), 0600)

	_, err = NewStoreAt(credPath, configPath)
	if !errors.Is(err, ErrAmbiguousProfile) {
		t.Errorf("expected ErrAmbiguousProfile, got %v", err)
	}
}

func TestUnclassifiableProfileExcluded(t *testing.T) {
	config := `[profile region-only]
region = us-west-2

[profile sso-profile]
sso_start_url = https://example.awsapps.com/start
sso_region = us-east-1
sso_account_id = 123456789012
sso_role_name = AdministratorAccess
`
	store, _, _ := newTestStore(t, "", config)

	if store.Has("region-only") {
		t.Error("profile with neither variant's fields should be excluded")
	}
	if !store.Has("sso-profile") {
		t.Error("valid SSO profile should remain listed")
	}
}

func TestMutationDoesNotMaterializeAbsentKeys(t *testing.T) {
	store, credPath, configPath := newTestStore(t, testCredentials, testConfig)

	err := store.Add(Profile{
		Name:            "transient",
		Kind:            KindIAM,
		AccessKeyID:     "AKIATRANSIENT",
		SecretAccessKey: "transientsecret",
	})
	if err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	// Untouched sections keep exactly their original key sets; keys the
	// store merely looked for must not be written back as empty.
	conf, err := ini.Load(configPath)
	if err != nil {
		t.Fatalf("failed to parse config file: %v", err)
	}
	prodConf := conf.Section("profile production")
	for _, key := range []string{"sso_start_url", "sso_region", "sso_account_id", "sso_role_name"} {
		if prodConf.HasKey(key) {
			t.Errorf("empty %s materialized in untouched config section", key)
		}
	}
	if got := prodConf.KeyStrings(); len(got) != 2 {
		t.Errorf("untouched config section key set changed: %v", got)
	}

	cred, err := ini.Load(credPath)
	if err != nil {
		t.Fatalf("failed to parse credentials file: %v", err)
	}
	for _, section := range []string{"default", "production"} {
		if cred.Section(section).HasKey("aws_session_token") {
			t.Errorf("empty aws_session_token materialized in untouched [%s] section", section)
		}
	}
	if got := cred.Section("staging").KeyStrings(); len(got) != 3 {
		t.Errorf("staging section key set changed: %v", got)
	}
}

func TestForeignKeysSurviveMutation(t *testing.T) {
	credentials := `[production]
aws_access_key_id = AKIAPRODUCTION
aws_secret_access_key = productionsecret
x_vendor_extension = opaque-value
`
	store, credPath, _ := newTestStore(t, credentials, "")

	err := store.Add(Profile{
		Name:            "second",
		Kind:            KindIAM,
		AccessKeyID:     "AKIASECOND",
		SecretAccessKey: "secondsecret",
	})
	if err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	data, err := os.ReadFile(credPath)
	if err != nil {
		t.Fatalf("failed to read credentials file: %v", err)
	}
	if !strings.Contains(string(data), "x_vendor_extension") {
		t.Error("foreign key lost when persisting an unrelated profile")
	}
}
