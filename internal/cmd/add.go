package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/awsp/internal/profile"
	"github.com/user/awsp/internal/prompter"
)

func newAddCmd() *cobra.Command {
	var (
		flagType         string
		flagName         string
		flagAccessKeyID  string
		flagSecretKey    string
		flagSessionToken string
		flagRegion       string
		flagOutput       string
		flagSSOStartURL  string
		flagSSORegion    string
		flagSSOAccountID string
		flagSSORoleName  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new AWS profile",
		Long: `Add a new AWS profile to the shared credentials and config files.

Prompts for the missing fields. IAM profiles need an access key pair; SSO
profiles need the start URL, SSO region, account ID and role name. When all
required flags for the chosen type are given, the command runs
non-interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(addFlags{
				typ:          flagType,
				name:         flagName,
				accessKeyID:  flagAccessKeyID,
				secretKey:    flagSecretKey,
				sessionToken: flagSessionToken,
				region:       flagRegion,
				output:       flagOutput,
				ssoStartURL:  flagSSOStartURL,
				ssoRegion:    flagSSORegion,
				ssoAccountID: flagSSOAccountID,
				ssoRoleName:  flagSSORoleName,
			})
		},
	}

	cmd.Flags().StringVar(&flagType, "type", "", "Profile type: iam or sso (prompted when omitted)")
	cmd.Flags().StringVar(&flagName, "name", "", "Profile name")
	cmd.Flags().StringVar(&flagAccessKeyID, "access-key-id", "", "IAM access key ID")
	cmd.Flags().StringVar(&flagSecretKey, "secret-access-key", "", "IAM secret access key")
	cmd.Flags().StringVar(&flagSessionToken, "session-token", "", "IAM session token (optional)")
	cmd.Flags().StringVar(&flagRegion, "region", "", "Default region for the profile (optional)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "AWS CLI output format (optional)")
	cmd.Flags().StringVar(&flagSSOStartURL, "sso-start-url", "", "SSO start URL")
	cmd.Flags().StringVar(&flagSSORegion, "sso-region", "", "SSO region")
	cmd.Flags().StringVar(&flagSSOAccountID, "sso-account-id", "", "SSO account ID")
	cmd.Flags().StringVar(&flagSSORoleName, "sso-role-name", "", "SSO role name")

	return cmd
}

type addFlags struct {
	typ          string
	name         string
	accessKeyID  string
	secretKey    string
	sessionToken string
	region       string
	output       string
	ssoStartURL  string
	ssoRegion    string
	ssoAccountID string
	ssoRoleName  string
}

func runAdd(f addFlags) error {
	settings := loadSettings()

	kind, err := resolveKind(f.typ)
	if err != nil {
		return err
	}

	p := profile.Profile{Kind: kind}
	interactive := f.name == ""

	p.Name = f.name
	if p.Name == "" {
		p.Name, err = prompter.String("Profile name", "")
		if err != nil {
			return err
		}
	}

	switch kind {
	case profile.KindIAM:
		if err := fillIAMFields(&p, f); err != nil {
			return err
		}
	case profile.KindSSO:
		if err := fillSSOFields(&p, f); err != nil {
			return err
		}
	}

	p.Region = f.region
	if p.Region == "" && interactive {
		p.Region, err = prompter.String("Default region (optional)", settings.Defaults.Region)
		if err != nil {
			return err
		}
	}
	p.Output = f.output

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.Add(p); err != nil {
		if errors.Is(err, profile.ErrProfileExists) {
			return fmt.Errorf("profile %q already exists", p.Name)
		}
		return err
	}

	fmt.Printf("Profile %q added\n", p.Name)
	fmt.Printf("Switch to it with 'awsp switch %s'\n", p.Name)
	return nil
}

func resolveKind(typ string) (profile.Kind, error) {
	switch typ {
	case "iam":
		return profile.KindIAM, nil
	case "sso":
		return profile.KindSSO, nil
	case "":
		idx, err := prompter.Select("Profile type", []string{"IAM (access key pair)", "SSO (federated login)"})
		if err != nil {
			return 0, err
		}
		if idx == 1 {
			return profile.KindSSO, nil
		}
		return profile.KindIAM, nil
	default:
		return 0, fmt.Errorf("Invalid profile type: %s (expected iam or sso)", typ)
	}
}

func fillIAMFields(p *profile.Profile, f addFlags) error {
	var err error

	p.AccessKeyID = f.accessKeyID
	if p.AccessKeyID == "" {
		p.AccessKeyID, err = prompter.String("AWS Access Key ID", "")
		if err != nil {
			return err
		}
	}

	p.SecretAccessKey = f.secretKey
	if p.SecretAccessKey == "" {
		p.SecretAccessKey, err = prompter.Password("AWS Secret Access Key")
		if err != nil {
			return err
		}
	}

	p.SessionToken = f.sessionToken
	return nil
}

func fillSSOFields(p *profile.Profile, f addFlags) error {
	var err error

	p.SSOStartURL = f.ssoStartURL
	if p.SSOStartURL == "" {
		p.SSOStartURL, err = prompter.String("SSO start URL", "")
		if err != nil {
			return err
		}
	}

	p.SSORegion = f.ssoRegion
	if p.SSORegion == "" {
		p.SSORegion, err = prompter.String("SSO region", "")
		if err != nil {
			return err
		}
	}

	p.SSOAccountID = f.ssoAccountID
	if p.SSOAccountID == "" {
		p.SSOAccountID, err = prompter.String("SSO account ID", "")
		if err != nil {
			return err
		}
	}

	p.SSORoleName = f.ssoRoleName
	if p.SSORoleName == "" {
		p.SSORoleName, err = prompter.String("SSO role name", "")
		if err != nil {
			return err
		}
	}
	return nil
}
