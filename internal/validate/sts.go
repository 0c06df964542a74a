package validate

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSValidator performs the identity check in process through the AWS SDK
// instead of shelling out. It reads the same shared files via the SDK's
// profile support.
type STSValidator struct{}

func (STSValidator) Validate(ctx context.Context, profileName string) Result {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(profileName),
	)
	if err != nil {
		return Result{Diagnostic: err.Error()}
	}

	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Result{Diagnostic: err.Error()}
	}
	return Result{Valid: true, AccountID: aws.ToString(out.Account)}
}
