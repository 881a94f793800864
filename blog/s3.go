package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store serves documents stored as "<prefix><slug>.md" objects in a bucket.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store returns a store over the objects in bucket under prefix. A
// non-empty prefix is treated as a directory.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	prefix = strings.TrimPrefix(prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// ListSlugs returns slugs in key order. Objects in nested "directories" are
// skipped, as are keys without the markdown extension.
func (s *S3Store) ListSlugs(ctx context.Context) ([]string, error) {
	slugs := []string{}
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			var noBucket *types.NoSuchBucket
			if errors.As(err, &noBucket) {
				return []string{}, nil
			}
			return nil, fmt.Errorf("blog: list s3://%s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if !strings.HasSuffix(name, extension) {
				continue
			}
			slug := strings.TrimSuffix(name, extension)
			if !ValidSlug(slug) {
				continue
			}
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

func (s *S3Store) ReadRaw(ctx context.Context, slug string) ([]byte, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + slug + extension),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("blog: read %s: %w", slug, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("blog: read %s: %w", slug, err)
	}
	return data, nil
}
