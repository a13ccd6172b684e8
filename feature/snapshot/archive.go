package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"meet-importer/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Prefix is the object prefix under which runs are archived.
const Prefix = "snapshots/"

const contentType = "application/x-ndjson"

// Archive stores the exported legacy tables of import runs.
type Archive struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// New creates an Archive on the given bucket.
func New(client storage.Client, bucket string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, logger: logger}
}

// ObjectName returns the object key of one table of a run.
func ObjectName(runID, table string) string {
	return path.Join(Prefix, runID, table+".jsonl")
}

// Save uploads every table of a run.
func (a *Archive) Save(ctx context.Context, runID string, tables map[string][]byte) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for table, data := range tables {
		g.Go(func() error {
			name := ObjectName(runID, table)
			_, err := a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)),
				minio.PutObjectOptions{ContentType: contentType})
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("Archived legacy snapshot", zap.String("run_id", runID), zap.Int("tables", len(tables)))
	return nil
}

// List returns the ids of archived runs in ascending order.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	var runs []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: Prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		id := strings.Trim(strings.TrimPrefix(obj.Key, Prefix), "/")
		if id != "" {
			runs = append(runs, id)
		}
	}
	sort.Strings(runs)
	return runs, nil
}

// Exporter returns a legacy exporter that reads the tables of an archived run.
func (a *Archive) Exporter(runID string) *Exporter {
	return &Exporter{archive: a, runID: runID}
}

// Exporter reads tables from an archived run.
type Exporter struct {
	archive *Archive
	runID   string
}

// Export returns the archived table. Tables that were not archived read as empty.
func (e *Exporter) Export(ctx context.Context, table string) ([]byte, error) {
	name := ObjectName(e.runID, table)
	obj, err := e.archive.client.GetObject(ctx, e.archive.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
