// Package aws loads argon2kdf secrets (peppers) from AWS Secrets Manager.
//
// # Basic Usage
//
//	import (
//	    "github.com/hengadev/argon2kdf"
//	    awssecrets "github.com/hengadev/argon2kdf/providers/secrets/aws"
//	)
//
//	store, err := awssecrets.NewSecretsManagerStore(ctx, awssecrets.Config{
//	    Region: "us-east-1",
//	})
//	if err != nil {
//	    // handle error
//	}
//
//	secret, err := store.LoadSecret(ctx, "user-service")
//	if err != nil {
//	    // handle error
//	}
//	hasher := argon2kdf.DefaultHasher().WithSecret(secret)
//
// # Secret Storage
//
// Secrets are read from the secret named
//
//	argon2kdf/{alias}/pepper
//
// whose SecretString holds the base64 (standard, padded) encoding of the
// secret bytes. This package never creates or updates secrets. Rotating a
// pepper invalidates every record hashed with it.
//
// # IAM Permissions
//
//	{
//	    "Effect": "Allow",
//	    "Action": [
//	        "secretsmanager:GetSecretValue",
//	        "secretsmanager:DescribeSecret"
//	    ],
//	    "Resource": "arn:aws:secretsmanager:region:account-id:secret:argon2kdf/*"
//	}
//
// # Error Handling
//
// Every failure wraps argon2kdf.ErrSecretUnavailable.
package aws
