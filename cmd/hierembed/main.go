// Command hierembed computes an (n-1)-dimensional embedding of n
// classes so that their pairwise Euclidean distances correspond to the
// normalized height of their lowest common subsumer in a given
// hierarchy, and stores the result as a self-describing artifact.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	flags "github.com/jessevdk/go-flags"

	"github.com/hupe1980/hierembed"
	"github.com/hupe1980/hierembed/artifact"
	"github.com/hupe1980/hierembed/blobstore"
	s3store "github.com/hupe1980/hierembed/blobstore/s3"
	"github.com/hupe1980/hierembed/codec"
	"github.com/hupe1980/hierembed/hierarchy"
)

type options struct {
	Hierarchy   string `long:"hierarchy" required:"true" description:"Path to a file containing parent-child relationships (one per line)"`
	ClassList   string `long:"class-list" description:"Path to a file listing the classes to embed (first word per line); defaults to all hierarchy leaves"`
	Out         string `long:"out" required:"true" description:"Output destination: local file path or s3://bucket/key"`
	StrIDs      bool   `long:"str-ids" description:"Treat class IDs as strings instead of integers"`
	Codec       string `long:"codec" default:"go-json" description:"Payload codec recorded in the artifact"`
	Compression string `long:"compression" default:"none" choice:"none" choice:"lz4" choice:"zstd" description:"Payload compression recorded in the artifact"`
	Parallelism int    `long:"parallelism" default:"1" description:"Worker goroutines for per-step sphere intersections"`
	Verbose     []bool `short:"v" long:"verbose" description:"Increase log verbosity (repeatable)"`
}

func main() {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "hierembed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	logger := newLogger(len(opts.Verbose))

	h, err := hierarchy.FromFile(opts.Hierarchy)
	if err != nil {
		return fmt.Errorf("read hierarchy: %w", err)
	}

	classes, err := selectClasses(h, opts)
	if err != nil {
		return err
	}

	dm, err := h.Distances(classes)
	if err != nil {
		return fmt.Errorf("compute class distances: %w", err)
	}

	embedder := hierembed.New(
		hierembed.WithLogger(logger),
		hierembed.WithParallelism(opts.Parallelism),
	)

	start := time.Now()

	emb, err := embedder.Embed(ctx, dm)
	if err != nil {
		return fmt.Errorf("compute embedding: %w", err)
	}

	elapsed := time.Since(start)

	deviation, err := emb.MaxDeviation(dm)
	if err != nil {
		return err
	}

	fmt.Printf("Computed semantic embeddings for %d classes in %g seconds.\n", emb.N(), elapsed.Seconds())
	fmt.Printf("Maximum deviation from target distances: %g\n", deviation)

	art, err := artifact.New(classes, emb)
	if err != nil {
		return err
	}

	return save(ctx, opts, art)
}

func newLogger(verbosity int) *hierembed.Logger {
	switch {
	case verbosity >= 2:
		return hierembed.NewTextLogger(slog.LevelDebug)
	case verbosity == 1:
		return hierembed.NewTextLogger(slog.LevelInfo)
	default:
		return hierembed.NewTextLogger(slog.LevelWarn)
	}
}

// selectClasses determines the classes to embed: the explicit class
// list when given, all hierarchy leaves otherwise, either way in
// canonical sorted order.
func selectClasses(h *hierarchy.Hierarchy, opts options) ([]string, error) {
	var labels []string

	if opts.ClassList != "" {
		var err error

		labels, err = readClassList(opts.ClassList)
		if err != nil {
			return nil, fmt.Errorf("read class list: %w", err)
		}
	} else {
		labels = h.Leaves()
	}

	classes, err := hierarchy.SortClasses(labels, !opts.StrIDs)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

// readClassList reads unique class IDs from a file, taking the first
// whitespace-separated word of every non-empty line.
func readClassList(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]struct{})

	var labels []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if _, ok := seen[fields[0]]; !ok {
			seen[fields[0]] = struct{}{}
			labels = append(labels, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(labels)

	return labels, nil
}

func save(ctx context.Context, opts options, art *artifact.Artifact) error {
	c, ok := codec.ByName(opts.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", opts.Codec)
	}

	ctype, ok := artifact.CompressionByName(opts.Compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", opts.Compression)
	}

	store, name, err := newStore(ctx, opts.Out)
	if err != nil {
		return err
	}

	if err := artifact.Save(ctx, store, name, art, artifact.WithCodec(c), artifact.WithCompression(ctype)); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	return nil
}

// newStore selects the blob store from the output destination: an S3
// store for s3://bucket/key URLs, a local directory store otherwise.
func newStore(ctx context.Context, out string) (blobstore.BlobStore, string, error) {
	if rest, ok := strings.CutPrefix(out, "s3://"); ok {
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return nil, "", fmt.Errorf("invalid S3 destination %q, want s3://bucket/key", out)
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load AWS config: %w", err)
		}

		store := s3store.NewStore(awss3.NewFromConfig(cfg), bucket, path.Dir(key))

		return store, path.Base(key), nil
	}

	dir := filepath.Dir(out)
	if dir == "" {
		dir = "."
	}

	return blobstore.NewLocal(dir), filepath.Base(out), nil
}
