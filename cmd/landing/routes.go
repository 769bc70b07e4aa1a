package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

func newRoutesCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print every renderable /{channel}/{slug} path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := root.load(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()
			return printRoutes(ctx, rt.store, cmd.OutOrStdout())
		},
	}
}

func printRoutes(ctx context.Context, store pages.Store, w io.Writer) error {
	configs, err := pages.All(ctx, store)
	if err != nil {
		return fmt.Errorf("list page configs: %w", err)
	}
	for _, r := range pages.StaticRoutes(configs) {
		if _, err := fmt.Fprintln(w, r.Path()); err != nil {
			return err
		}
	}
	return nil
}
