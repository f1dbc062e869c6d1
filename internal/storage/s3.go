// Package storage uploads note attachments and profile pictures to an
// S3-compatible bucket and removes them again.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	apperrors "notely/internal/errors"
)

// Key prefixes, one per attachment kind.
const (
	PrefixImages          = "images"
	PrefixAudio           = "audio"
	PrefixProfilePictures = "profile-pictures"
)

// legacyHostMarker separates host from key in URLs written before the public
// base URL became configurable.
const legacyHostMarker = ".com/"

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ClientOptions configures NewS3Client.
type ClientOptions struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint, e.g. for MinIO. Enables path-style addressing.
	Endpoint string
}

// NewS3Client builds an S3 client. Static credentials are used when given,
// otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Store puts and deletes objects in one bucket.
type S3Store struct {
	client        S3API
	bucket        string
	publicBaseURL string
	log           *zap.SugaredLogger
}

// NewS3Store creates a store writing to bucket. publicBaseURL is the prefix of
// every URL returned by Put.
func NewS3Store(client S3API, bucket, publicBaseURL string, log *zap.SugaredLogger) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}
}

// Put uploads data under {prefix}/{fileName} and returns its public URL.
func (s *S3Store) Put(ctx context.Context, prefix, fileName string, data []byte, contentType string) (string, error) {
	key := prefix + "/" + fileName
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.log.Errorw("s3 upload failed", "key", key, "error", err)
		return "", fmt.Errorf("%w: put %s: %v", apperrors.ErrStoreUnavailable, key, err)
	}
	return s.URLForKey(key), nil
}

// Delete removes the object behind objectURL. It never fails: an empty URL is
// a no-op and store errors are only logged.
func (s *S3Store) Delete(ctx context.Context, objectURL string) {
	if objectURL == "" {
		return
	}
	key, ok := s.KeyFromURL(objectURL)
	if !ok {
		s.log.Warnw("s3 delete skipped, unrecognised url", "url", objectURL)
		return
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		s.log.Errorw("s3 delete failed", "key", key, "error", err)
		return
	}
	s.log.Infow("deleted from s3", "key", key)
}

// URLForKey returns the public URL of key.
func (s *S3Store) URLForKey(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBaseURL + "/" + strings.Join(segments, "/")
}

// KeyFromURL extracts the object key from a URL produced by URLForKey, or from
// a legacy URL by taking everything after the first ".com/".
func (s *S3Store) KeyFromURL(objectURL string) (string, bool) {
	var escaped string
	switch {
	case s.publicBaseURL != "" && strings.HasPrefix(objectURL, s.publicBaseURL+"/"):
		escaped = strings.TrimPrefix(objectURL, s.publicBaseURL+"/")
	case strings.Contains(objectURL, legacyHostMarker):
		escaped = objectURL[strings.Index(objectURL, legacyHostMarker)+len(legacyHostMarker):]
	default:
		return "", false
	}
	if escaped == "" {
		return "", false
	}
	key, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return key, true
}
