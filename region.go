package redshiftlineage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"golang.org/x/sync/singleflight"
)

// RegionResolver returns the default region configured for a named profile.
// An empty profile selects the default credential chain. An empty region
// without error means no region is configured.
type RegionResolver interface {
	ResolveDefaultRegion(ctx context.Context, profile string) (string, error)
}

type RegionResolverFunc func(ctx context.Context, profile string) (string, error)

func (f RegionResolverFunc) ResolveDefaultRegion(ctx context.Context, profile string) (string, error) {
	return f(ctx, profile)
}

// SharedConfigRegionResolver resolves regions from the AWS shared config
// files and environment, as the SDK's default session does. A named profile
// that is not present in the shared config files is an error.
type SharedConfigRegionResolver struct {
	group        singleflight.Group
	checkProfile func(ctx context.Context, profile string) error
	loadConfig   func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error)
}

func NewSharedConfigRegionResolver() *SharedConfigRegionResolver {
	return &SharedConfigRegionResolver{
		checkProfile: checkSharedConfigProfile,
		loadConfig:   config.LoadDefaultConfig,
	}
}

// checkSharedConfigProfile fails when profile is missing from the shared
// config and credentials files. LoadDefaultConfig ignores missing profiles.
func checkSharedConfigProfile(ctx context.Context, profile string) error {
	envCfg, err := config.NewEnvConfig()
	if err != nil {
		return fmt.Errorf("load env config: %w", err)
	}
	_, err = config.LoadSharedConfigProfile(ctx, profile, func(o *config.LoadSharedConfigOptions) {
		if envCfg.SharedConfigFile != "" {
			o.ConfigFiles = []string{envCfg.SharedConfigFile}
		}
		if envCfg.SharedCredentialsFile != "" {
			o.CredentialsFiles = []string{envCfg.SharedCredentialsFile}
		}
	})
	if err != nil {
		var notExist config.SharedConfigProfileNotExistError
		if errors.As(err, &notExist) {
			return fmt.Errorf("profile %q: %w", profile, ErrProfileNotFound)
		}
		return err
	}
	return nil
}

// ResolveDefaultRegion collapses concurrent lookups of the same profile into
// one shared config load. The load itself is not bound to any caller's ctx,
// so a cancelled caller does not fail the others waiting on it.
func (r *SharedConfigRegionResolver) ResolveDefaultRegion(ctx context.Context, profile string) (string, error) {
	ch := r.group.DoChan(profile, func() (interface{}, error) {
		return r.resolve(context.Background(), profile)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		debugLogger.Printf("default region: profile=%q region=%q shared=%v", profile, res.Val, res.Shared)
		return res.Val.(string), nil
	}
}

func (r *SharedConfigRegionResolver) resolve(ctx context.Context, profile string) (string, error) {
	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		if r.checkProfile != nil {
			if err := r.checkProfile(ctx, profile); err != nil {
				return "", err
			}
		}
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}
	loadConfig := r.loadConfig
	if loadConfig == nil {
		loadConfig = config.LoadDefaultConfig
	}
	awsCfg, err := loadConfig(ctx, optFns...)
	if err != nil {
		return "", err
	}
	return awsCfg.Region, nil
}
