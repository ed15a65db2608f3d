package registry

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ecr"

	cleaner "github.com/juancamilocc/ecr-cleaner"
)

// ListImages pages through every image ID in repo and returns them as
// listing entries. Untagged images come back with an empty Tag; the core
// filters those out during Collect.
func (c *Client) ListImages(ctx context.Context, repo string) ([]cleaner.ListEntry, error) {
	input := &ecr.ListImagesInput{
		RepositoryName: aws.String(repo),
	}

	var entries []cleaner.ListEntry
	err := c.api.ListImagesPagesWithContext(ctx, input,
		func(page *ecr.ListImagesOutput, _ bool) bool {
			for _, id := range page.ImageIds {
				entries = append(entries, cleaner.ListEntry{
					Tag:    aws.StringValue(id.ImageTag),
					Digest: aws.StringValue(id.ImageDigest),
				})
			}
			return true
		})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == ecr.ErrCodeRepositoryNotFoundException {
			return nil, fmt.Errorf("repository %q not found: %w", repo, err)
		}
		return nil, fmt.Errorf("list images in %q: %w", repo, err)
	}

	return entries, nil
}
