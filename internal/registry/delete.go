package registry

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ecr"
)

// batchDeleteLimit is the BatchDeleteImage hard cap per call.
const batchDeleteLimit = 100

// Failure describes one digest ECR refused to delete.
type Failure struct {
	Digest string
	Code   string
	Reason string
}

// DeleteResult reports the outcome of one deletion sweep.
type DeleteResult struct {
	Deleted  int
	Failures []Failure
}

// DeleteDigests removes digests from repo in batches of at most 100.
//
// Digests are sorted first so batch composition is stable across runs.
// A batch call that fails wholesale is recorded digest-by-digest and the
// sweep continues with the next batch; only context cancellation aborts.
func (c *Client) DeleteDigests(ctx context.Context, repo string, digests []string) (DeleteResult, error) {
	var res DeleteResult
	if len(digests) == 0 {
		return res, nil
	}

	sorted := append([]string(nil), digests...)
	sort.Strings(sorted)

	for start := 0; start < len(sorted); start += batchDeleteLimit {
		end := start + batchDeleteLimit
		if end > len(sorted) {
			end = len(sorted)
		}
		chunk := sorted[start:end]

		ids := make([]*ecr.ImageIdentifier, 0, len(chunk))
		for _, d := range chunk {
			ids = append(ids, &ecr.ImageIdentifier{ImageDigest: aws.String(d)})
		}

		out, err := c.api.BatchDeleteImageWithContext(ctx, &ecr.BatchDeleteImageInput{
			RepositoryName: aws.String(repo),
			ImageIds:       ids,
		})
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}

			code, reason := "BatchError", err.Error()
			if aerr, ok := err.(awserr.Error); ok {
				code, reason = aerr.Code(), aerr.Message()
			}
			for _, d := range chunk {
				res.Failures = append(res.Failures, Failure{Digest: d, Code: code, Reason: reason})
			}
			continue
		}

		res.Deleted += len(out.ImageIds)
		for _, f := range out.Failures {
			res.Failures = append(res.Failures, Failure{
				Digest: aws.StringValue(f.ImageId.ImageDigest),
				Code:   aws.StringValue(f.FailureCode),
				Reason: aws.StringValue(f.FailureReason),
			})
		}
	}

	return res, nil
}
