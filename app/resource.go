package app

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gywan/gywan-site/internal/daemon"
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/storage"
)

// resourceKeyPrefix is the storage folder of uploaded resources.
const resourceKeyPrefix = "resources"

func init() { //nolint: gochecknoinits
	f := resourceAddCmd.Flags()
	f.StringVar(&resourceOpts.title, "title", "", "Resource title")
	f.StringVar(&resourceOpts.description, "description", "", "Resource description")
	f.StringVar(&resourceOpts.category, "category", string(models.ResourceOther), "toolkit, guide, report, curriculum or other")
	f.StringVar(&resourceOpts.file, "file", "", "File to upload")
	f.BoolVar(&resourceOpts.active, "active", true, "Publish the resource immediately")

	_ = resourceAddCmd.MarkFlagRequired("title")
	_ = resourceAddCmd.MarkFlagRequired("file")

	resourceCmd.AddCommand(resourceAddCmd)
	rootCmd.AddCommand(resourceCmd)
}

var (
	resourceOpts struct {
		title, description, category, file string
		active                             bool
	}

	resourceCmd = &cobra.Command{
		Use:   "resource",
		Short: "Manage downloadable resources",
	}

	resourceAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Upload a file and add it to the resource library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			category := models.ResourceCategory(resourceOpts.category)
			if !category.Valid() {
				return fmt.Errorf("%w: %q", catalog.ErrInvalidCategory, resourceOpts.category)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := daemon.OpenDB(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			store, err := storage.New(ctx, cfg.Storage)
			if err != nil {
				return err
			}

			f, err := os.Open(resourceOpts.file)
			if err != nil {
				return err
			}
			defer f.Close()

			key := storage.NewKey(resourceKeyPrefix, filepath.Base(resourceOpts.file))
			contentType := mime.TypeByExtension(filepath.Ext(resourceOpts.file))

			if err := store.Put(ctx, key, f, contentType); err != nil {
				return fmt.Errorf("upload %s: %w", resourceOpts.file, err)
			}

			res := models.Resource{
				Title:       resourceOpts.title,
				Description: resourceOpts.description,
				Category:    category,
				FileKey:     key,
				IsActive:    resourceOpts.active,
			}

			if err := catalog.CreateResource(db, &res); err != nil {
				return err
			}

			log.Info().Uint64("id", res.ID).Str("key", key).Msg("resource added")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "resource %d added\n", res.ID)

			return err
		},
	}
)
