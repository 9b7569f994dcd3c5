package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dmitrijs2005/promptmarket/internal/logging"
	"github.com/dmitrijs2005/promptmarket/internal/server"
	"github.com/dmitrijs2005/promptmarket/internal/server/config"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/liststore"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptmarket/internal/server/snapshot"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type deps struct {
	loadConfig  func() *config.Config
	openStore   func(ctx context.Context, c *config.Config) (liststore.Store, error)
	newUploader func(ctx context.Context, st snapshot.S3Settings) (snapshot.Uploader, error)
	logger      logging.Logger
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.LoadConfig,
		openStore:  server.OpenStore,
		newUploader: func(ctx context.Context, st snapshot.S3Settings) (snapshot.Uploader, error) {
			return snapshot.NewS3Client(ctx, st)
		},
		logger: logging.NewJSONLogger(os.Stderr, "warn"),
	}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "promptctl",
		Short:         "Inspect and export the prompt marketplace store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Parsed by config.LoadConfig from os.Args; declared so cobra accepts it.
	root.PersistentFlags().StringP("config", "c", "", "path to JSON config file")

	root.AddCommand(newListCmd(d), newSnapshotCmd(d))
	return root
}

// withRepository opens the configured store for the duration of fn.
func withRepository(ctx context.Context, d deps, fn func(c *config.Config, repo *prompts.ListRepository) error) error {
	c := d.loadConfig()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	store, err := d.openStore(ctx, c)
	if err != nil {
		return fmt.Errorf("store init error: %w", err)
	}
	defer server.CloseStore(store)

	return fn(c, prompts.NewListRepository(store, c.ListKey, c.MaxRecords, d.logger))
}

func newListCmd(d deps) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored prompts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd.Context(), d, func(_ *config.Config, repo *prompts.ListRepository) error {
				all, err := repo.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				if limit > 0 && len(all) > limit {
					all = all[:limit]
				}
				printTable(cmd.OutOrStdout(), all)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n prompts (0 = all)")
	return cmd
}

func newSnapshotCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Upload the whole backing list as JSON to the configured S3 bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd.Context(), d, func(c *config.Config, repo *prompts.ListRepository) error {
				uploader, err := d.newUploader(cmd.Context(), snapshot.S3Settings{
					User:         c.S3RootUser,
					Password:     c.S3RootPassword,
					Bucket:       c.S3Bucket,
					Region:       c.S3Region,
					BaseEndpoint: c.S3BaseEndpoint,
				})
				if err != nil {
					return err
				}

				key, err := snapshot.NewExporter(repo, uploader, c.S3Bucket, d.logger).Export(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s\n", c.S3Bucket, key)
				return nil
			})
		},
	}
}

func printTable(w io.Writer, all []*models.Prompt) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Price", "Rating"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, p := range all {
		price := "free"
		if p.IsPaid() {
			price = strconv.FormatInt(p.Price, 10)
		}
		table.Append([]string{p.ID, p.Name, price, fmt.Sprintf("%.1f (%d)", p.Rating, p.RatingCount)})
	}
	table.Render()
}
