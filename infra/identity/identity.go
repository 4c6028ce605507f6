package identity

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupIdentity enables Identity Platform with anonymous sign-in, so a
// visitor gets a ledger immediately, and Google sign-in for a durable
// account.
func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) (*identityplatform.Config, error) {
	cfg, err := identityplatform.NewConfig(ctx,
		"identityPlatformConfig",
		&identityplatform.ConfigArgs{
			SignIn: &identityplatform.ConfigSignInArgs{
				Anonymous: &identityplatform.ConfigSignInAnonymousArgs{
					Enabled: pulumi.Bool(true),
				},
			},
		},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	googleCfg := config.New(ctx, "google")
	_, err = identityplatform.NewDefaultSupportedIdpConfig(ctx, "googleSignIn",
		&identityplatform.DefaultSupportedIdpConfigArgs{
			IdpId:        pulumi.String("google.com"),
			ClientId:     googleCfg.RequireSecret("clientId"),
			ClientSecret: googleCfg.RequireSecret("clientSecret"),
			Enabled:      pulumi.Bool(true),
		},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{cfg}),
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
