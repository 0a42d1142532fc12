package allocations

import (
	"context"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/gaze-network/launchpad/pkg/merkle"
	cstream "github.com/planxnx/concurrent-stream"
)

const (
	// DefaultConcurrency is the number of sources fetched at once.
	DefaultConcurrency = 4

	s3Scheme = "s3"
)

// Fetcher returns the raw content behind a source uri.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

type Loader struct {
	local       Fetcher
	s3          Fetcher
	concurrency int
}

type LoaderOption func(*Loader)

// WithS3Fetcher replaces the default S3 fetcher, which uses the AWS default credential chain.
func WithS3Fetcher(f Fetcher) LoaderOption {
	return func(l *Loader) {
		l.s3 = f
	}
}

func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		local:       localFetcher{},
		s3:          &s3Fetcher{},
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes a single allocation source.
func (l *Loader) Load(ctx context.Context, uri string, opts Options) ([]merkle.Allocation, error) {
	if !opts.Format.IsSupported() {
		return nil, errors.Wrapf(errs.Unsupported, "%q allocation format is not supported", opts.Format)
	}
	format := opts.Format
	if format == FormatAuto {
		inferred, err := formatOf(uri)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		format = inferred
	}

	fetcher := l.local
	if strings.HasPrefix(uri, s3Scheme+"://") {
		fetcher = l.s3
	}
	data, err := fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, errors.Wrapf(err, "can't fetch %q", uri)
	}

	allocations, err := Decode(data, format, opts.Decimals)
	if err != nil {
		return nil, errors.Wrapf(err, "can't decode %q", uri)
	}
	logger.DebugContext(ctx, "Loaded allocations", slogx.String("source", uri), slogx.Int("count", len(allocations)))
	return allocations, nil
}

type loadResult struct {
	index       int
	allocations []merkle.Allocation
	err         error
}

// LoadAll loads every source concurrently and merges them in the given order.
func (l *Loader) LoadAll(ctx context.Context, uris []string, opts Options) ([]merkle.Allocation, error) {
	if len(uris) == 0 {
		return nil, errors.Wrap(errs.InvalidInput, "no allocation source")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make(chan loadResult)
	stream := cstream.NewStream(ctx, l.concurrency, out)

	// Wait for stream to finish and close out channel
	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	go func() {
		defer stream.Close()
		for i, uri := range uris {
			i, uri := i, uri
			select {
			case <-ctx.Done():
				return
			default:
				stream.Go(func() loadResult {
					allocations, err := l.Load(ctx, uri, opts)
					return loadResult{index: i, allocations: allocations, err: err}
				})
			}
		}
	}()

	results := make([]loadResult, 0, len(uris))
	var firstErr error
	for result := range out {
		if result.err != nil && firstErr == nil {
			firstErr = result.err
			cancel()
		}
		results = append(results, result)
	}
	if firstErr != nil {
		return nil, errors.WithStack(firstErr)
	}
	if len(results) != len(uris) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "allocation loading interrupted")
		}
		return nil, errors.Wrapf(errs.InternalError, "loaded %d of %d allocation sources", len(results), len(uris))
	}

	slices.SortFunc(results, func(a, b loadResult) int { return a.index - b.index })
	lists := make([][]merkle.Allocation, 0, len(results))
	for _, result := range results {
		lists = append(lists, result.allocations)
	}
	return Merge(lists...)
}

type localFetcher struct{}

func (localFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	data, err := os.ReadFile(strings.TrimPrefix(uri, "file://"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errs.NotFound, err.Error())
		}
		return nil, errors.WithStack(err)
	}
	return data, nil
}

type s3Fetcher struct {
	once   sync.Once
	client *s3.Client
	err    error
}

func (f *s3Fetcher) init(ctx context.Context) (*s3.Client, error) {
	f.once.Do(func() {
		sdkConfig, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			f.err = errors.Wrap(err, "can't load aws user config")
			return
		}
		f.client = s3.NewFromConfig(sdkConfig)
	})
	return f.client, f.err
}

func (f *s3Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	client, err := f.init(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		d.Concurrency = 4
		d.PartSize = 10 * 1024 * 1024
	})

	buffer := manager.NewWriteAtBuffer([]byte{})
	numBytes, err := downloader.Download(ctx, buffer, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download file for bucket %q and key %q", bucket, key)
	}
	if numBytes < 1 {
		return nil, errors.Wrap(errs.NotFound, "got empty file")
	}

	return buffer.Bytes(), nil
}

// parseS3URI splits s3://bucket/key.
func parseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", errors.Wrapf(errs.InvalidInput, "invalid s3 uri %q", uri)
	}
	bucket, key = u.Host, strings.TrimPrefix(u.Path, "/")
	if u.Scheme != s3Scheme || bucket == "" || key == "" {
		return "", "", errors.Wrapf(errs.InvalidInput, "invalid s3 uri %q, expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}
