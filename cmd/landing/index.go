package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	cloudstorage "cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

func newIndexCommand(root *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Write the page index artifact",
		Long:  "Scans every stored page configuration and writes the index JSON to a file, stdout (-) or a gs://bucket/object URL.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := root.load(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			artifact, err := buildArtifact(ctx, rt.store, time.Now())
			if err != nil {
				return err
			}
			if err := writeArtifact(ctx, out, artifact, cmd.OutOrStdout()); err != nil {
				return err
			}
			rt.logger.Info("index written", zap.String("out", out), zap.Int("pages", artifact.Total))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "destination: file path, - for stdout, or gs://bucket/object")
	return cmd
}

func buildArtifact(ctx context.Context, store pages.Store, now time.Time) (pages.IndexArtifact, error) {
	entries, err := store.Scan(ctx)
	if err != nil {
		return pages.IndexArtifact{}, fmt.Errorf("scan page configs: %w", err)
	}
	return pages.NewIndexArtifact(pages.BuildIndex(entries), now), nil
}

func writeArtifact(ctx context.Context, out string, artifact pages.IndexArtifact, stdout io.Writer) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	data = append(data, '\n')

	if bucket, object, ok := parseGSURL(out); ok {
		return uploadArtifact(ctx, bucket, object, data)
	}
	if out == "" || out == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// parseGSURL splits gs://bucket/object.
func parseGSURL(raw string) (bucket, object string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "gs" || u.Host == "" {
		return "", "", false
	}
	object = strings.TrimPrefix(u.Path, "/")
	if object == "" {
		return "", "", false
	}
	return u.Host, object, true
}

func uploadArtifact(ctx context.Context, bucket, object string, data []byte) error {
	client, err := cloudstorage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("storage: create client: %w", err)
	}
	defer client.Close()

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-cache"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("storage: write gs://%s/%s: %w", bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: finalize gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}
