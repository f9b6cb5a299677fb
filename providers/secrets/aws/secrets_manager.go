package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/hengadev/argon2kdf"
)

// secretsManagerClient interface for AWS Secrets Manager operations (allows mocking)
type secretsManagerClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
}

// SecretsManagerStore implements argon2kdf.SecretSource using AWS Secrets
// Manager. It only reads: secrets are provisioned out of band.
type SecretsManagerStore struct {
	client secretsManagerClient
	region string
}

var _ argon2kdf.SecretSource = (*SecretsManagerStore)(nil)

// NewSecretsManagerStore creates a new AWS Secrets Manager store instance.
//
// Usage:
//
//	// Using default AWS configuration
//	store, err := aws.NewSecretsManagerStore(ctx, aws.Config{})
//
//	// With specific region
//	store, err := aws.NewSecretsManagerStore(ctx, aws.Config{Region: "us-east-1"})
//
//	// With custom AWS config
//	awsCfg, _ := config.LoadDefaultConfig(ctx)
//	store, err := aws.NewSecretsManagerStore(ctx, aws.Config{AWSConfig: &awsCfg})
func NewSecretsManagerStore(ctx context.Context, cfg Config) (*SecretsManagerStore, error) {
	var awsConfig aws.Config
	var err error

	if cfg.AWSConfig != nil {
		awsConfig = *cfg.AWSConfig
	} else {
		opts := []func(*config.LoadOptions) error{}
		if cfg.Region != "" {
			opts = append(opts, config.WithRegion(cfg.Region))
		}

		awsConfig, err = config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load AWS config: %w", argon2kdf.ErrSecretUnavailable, err)
		}
	}

	var clientOpts []func(*secretsmanager.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &SecretsManagerStore{
		client: secretsmanager.NewFromConfig(awsConfig, clientOpts...),
		region: awsConfig.Region,
	}, nil
}

// GetStoragePath returns the AWS Secrets Manager secret name for a given alias.
//
// Path format: "argon2kdf/{alias}/pepper"
func (s *SecretsManagerStore) GetStoragePath(alias string) string {
	return fmt.Sprintf(argon2kdf.AWSSecretPathTemplate, alias)
}

// LoadSecret retrieves the secret stored for alias. The stored value is the
// base64 encoding of the secret bytes (see argon2kdf.EncodeSecret).
//
// Example:
//
//	secret, err := store.LoadSecret(ctx, "my-service")
//	if err != nil {
//	    log.Fatalf("Failed to load secret: %v", err)
//	}
//	hasher := argon2kdf.DefaultHasher().WithSecret(secret)
func (s *SecretsManagerStore) LoadSecret(ctx context.Context, alias string) (*argon2kdf.Secret, error) {
	secretName := s.GetStoragePath(alias)

	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get secret from Secrets Manager: %w",
			argon2kdf.ErrSecretUnavailable, err)
	}

	if result.SecretString == nil {
		return nil, fmt.Errorf("%w: secret not found for alias: %s",
			argon2kdf.ErrSecretUnavailable, alias)
	}

	return argon2kdf.DecodeSecret(*result.SecretString)
}

// SecretExists checks if a secret exists in AWS Secrets Manager.
//
// Returns an error only for actual failures (not for "secret not found").
func (s *SecretsManagerStore) SecretExists(ctx context.Context, alias string) (bool, error) {
	secretName := s.GetStoragePath(alias)

	_, err := s.client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		var notFoundErr *types.ResourceNotFoundException
		if errors.As(err, &notFoundErr) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to check if secret exists: %w",
			argon2kdf.ErrSecretUnavailable, err)
	}

	return true, nil
}

// Region returns the AWS region this Secrets Manager store is configured for.
func (s *SecretsManagerStore) Region() string {
	return s.region
}
