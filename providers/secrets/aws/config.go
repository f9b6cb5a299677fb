package aws

import "github.com/aws/aws-sdk-go-v2/aws"

// Config configures the Secrets Manager client.
type Config struct {
	// Region such as "us-east-1". Empty falls back to AWS_REGION or the
	// shared config file. Ignored when AWSConfig is set.
	Region string

	// Endpoint overrides the service endpoint, e.g. a LocalStack URL.
	Endpoint string

	// AWSConfig is an optional pre-loaded SDK configuration.
	AWSConfig *aws.Config
}
