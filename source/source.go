// Package source opens the stream that an array is loaded from.
//
// An input is named by a URI:
//
//	number.txt                   local file
//	file:///data/number.txt      local file
//	s3://bucket/path/number.txt  object in S3-compatible storage (MinIO client)
//
// Inputs whose name ends in ".zst" or ".lz4" are decompressed transparently.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/intel/forGoSearch/sorted"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pierrec/lz4/v4"
)

// Environment variables consulted when an s3:// input is opened without an
// explicit client.
const (
	EnvS3Endpoint  = "FORGOSEARCH_S3_ENDPOINT"
	EnvS3AccessKey = "FORGOSEARCH_S3_ACCESS_KEY"
	EnvS3SecretKey = "FORGOSEARCH_S3_SECRET_KEY"
	EnvS3Secure    = "FORGOSEARCH_S3_SECURE"
)

var (
	// ErrNotFound is returned when the named input does not exist.
	ErrNotFound = fmt.Errorf("%w: input not found", sorted.ErrDataUnavailable)

	// ErrNoEndpoint is returned for s3:// inputs when neither a client nor an
	// endpoint was configured.
	ErrNoEndpoint = errors.New("no S3 endpoint configured")
)

type options struct {
	client *minio.Client
	getenv func(string) string
}

// Option configures Open.
type Option func(*options)

// WithMinioClient makes Open use client for s3:// inputs instead of building
// one from the environment.
func WithMinioClient(client *minio.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithGetenv replaces os.Getenv for looking up the S3 settings.
func WithGetenv(getenv func(string) string) Option {
	return func(o *options) {
		o.getenv = getenv
	}
}

// Location is a parsed input URI.
type Location struct {
	Scheme string // "file" or "s3"
	Bucket string // s3 only
	Path   string // file path or object key
}

// Parse splits an input URI into its parts.
func Parse(uri string) (Location, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", uri)
		}
		return Location{Scheme: "s3", Bucket: bucket, Path: key}, nil
	case strings.HasPrefix(uri, "file://"):
		uri = strings.TrimPrefix(uri, "file://")
	case strings.Contains(uri, "://"):
		scheme, _, _ := strings.Cut(uri, "://")
		return Location{}, fmt.Errorf("unsupported input scheme %q", scheme)
	}
	if uri == "" {
		return Location{}, errors.New("empty input path")
	}
	return Location{Scheme: "file", Path: uri}, nil
}

// Open opens the input named by uri for reading, decompressing it if its
// name calls for that. The caller must close the returned reader.
func Open(ctx context.Context, uri string, optFns ...Option) (io.ReadCloser, error) {
	o := options{getenv: os.Getenv}
	for _, fn := range optFns {
		fn(&o)
	}

	loc, err := Parse(uri)
	if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	switch loc.Scheme {
	case "s3":
		rc, err = openObject(ctx, loc, &o)
	default:
		rc, err = openFile(loc.Path)
	}
	if err != nil {
		return nil, err
	}
	return decompress(loc.Path, rc)
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", sorted.ErrDataUnavailable, err)
	}
	return f, nil
}

func openObject(ctx context.Context, loc Location, o *options) (io.ReadCloser, error) {
	client := o.client
	if client == nil {
		var err error
		if client, err = clientFromEnv(o.getenv); err != nil {
			return nil, err
		}
	}

	obj, err := client.GetObject(ctx, loc.Bucket, loc.Path, minio.GetObjectOptions{})
	if err != nil {
		return nil, objectError(loc, err)
	}
	// GetObject is lazy; Stat surfaces a missing object before the first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, objectError(loc, err)
	}
	return obj, nil
}

func objectError(loc Location, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return fmt.Errorf("%w: s3://%s/%s", ErrNotFound, loc.Bucket, loc.Path)
	}
	return fmt.Errorf("%w: s3://%s/%s: %w", sorted.ErrDataUnavailable, loc.Bucket, loc.Path, err)
}

func clientFromEnv(getenv func(string) string) (*minio.Client, error) {
	endpoint := getenv(EnvS3Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: set %s", ErrNoEndpoint, EnvS3Endpoint)
	}
	secure := true
	if s := getenv(EnvS3Secure); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvS3Secure, err)
		}
		secure = b
	}
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(getenv(EnvS3AccessKey), getenv(EnvS3SecretKey), ""),
		Secure: secure,
	})
}

func decompress(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("%w: zstd: %w", sorted.ErrDataUnavailable, err)
		}
		return &stackedReader{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			rc.Close,
		}}, nil
	case strings.HasSuffix(name, ".lz4"):
		return &stackedReader{Reader: lz4.NewReader(rc), closers: []func() error{rc.Close}}, nil
	}
	return rc, nil
}

// stackedReader reads from a decoder and closes the decoder and the
// underlying stream, in that order.
type stackedReader struct {
	io.Reader
	closers []func() error
}

func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
