package audio

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink defines the interface for destinations of synthesized audio
type Sink interface {
	// Write stores the complete payload. A failed write leaves no partial
	// output behind.
	Write(ctx context.Context, data []byte) error

	// String describes the destination for logs and messages
	String() string
}

const s3Scheme = "s3://"

// IsRemote reports whether dest names an object store location.
func IsRemote(dest string) bool {
	return strings.HasPrefix(dest, s3Scheme)
}

// ParseS3 splits an s3://bucket/key destination.
func ParseS3(dest string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(dest, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 destination: %q", dest)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 destination needs bucket and key: %q", dest)
	}
	return bucket, key, nil
}

// Open returns the sink for dest. The aws config is only used for s3://
// destinations.
func Open(dest string, cfg func() (aws.Config, error)) (Sink, error) {
	if dest == "" {
		return nil, fmt.Errorf("no output path given")
	}
	if !IsRemote(dest) {
		return NewFileSink(dest), nil
	}

	bucket, key, err := ParseS3(dest)
	if err != nil {
		return nil, err
	}
	awsCfg, err := cfg()
	if err != nil {
		return nil, err
	}
	return NewS3Sink(s3.NewFromConfig(awsCfg), bucket, key), nil
}
