package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

// pagePublisher stores parsed page configurations; *pages.FirestoreStore satisfies it.
type pagePublisher interface {
	Put(ctx context.Context, cfg pages.PageConfig) error
}

func newPublishCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "publish FILE...",
		Short: "Write page config files to the Firestore collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := root.load(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			store, ok := rt.store.(*pages.FirestoreStore)
			if !ok {
				return errors.New("publish requires LANDING_PAGES_SOURCE=firestore")
			}
			for _, file := range args {
				slug, err := publishFile(ctx, store, file)
				if err != nil {
					return err
				}
				rt.logger.Info("page published", zap.String("slug", slug), zap.String("file", file))
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		},
	}
}

func publishFile(ctx context.Context, dst pagePublisher, file string) (string, error) {
	format, ok := pages.FormatForFile(file)
	if !ok {
		return "", fmt.Errorf("%s: unsupported extension", file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	cfg, err := pages.Decode(data, format)
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	if cfg.Slug == "" {
		cfg.Slug = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	slug, ok := pages.NormalizeSlug(cfg.Slug)
	if !ok {
		return "", fmt.Errorf("%s: invalid slug %q", file, cfg.Slug)
	}
	cfg.Slug = slug
	if !cfg.Template.Valid() {
		return "", fmt.Errorf("%s: unknown template %q", file, cfg.Template)
	}
	for _, sec := range cfg.Sections {
		if err := sec.DecodeErr(); err != nil {
			return "", fmt.Errorf("%s: %w", file, err)
		}
	}
	if err := dst.Put(ctx, cfg); err != nil {
		return "", fmt.Errorf("publish %s: %w", slug, err)
	}
	return slug, nil
}
