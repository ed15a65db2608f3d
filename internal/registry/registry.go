// Package registry talks to Amazon ECR on behalf of the cleaner core:
// it lists the images the retention policy evaluates and deletes the
// digests the policy marks. Pagination, batching, and partial-failure
// reporting live here; the core stays pure.
package registry

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ecr"
	"github.com/aws/aws-sdk-go/service/ecr/ecriface"
)

// maxRetries matches the retry budget the deployment pipelines run with.
const maxRetries = 10

// Client wraps the narrow slice of the ECR API the cleaner uses.
type Client struct {
	api ecriface.ECRAPI
}

// New builds a Client for region using the default credential chain.
func New(region string) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:     aws.String(region),
		MaxRetries: aws.Int(maxRetries),
	})
	if err != nil {
		return nil, fmt.Errorf("create AWS session: %w", err)
	}

	return &Client{api: ecr.New(sess)}, nil
}

// NewWithAPI builds a Client over an existing ECR API. Used by tests to
// substitute a fake.
func NewWithAPI(api ecriface.ECRAPI) *Client {
	return &Client{api: api}
}
