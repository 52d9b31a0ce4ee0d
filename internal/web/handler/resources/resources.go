// Package resources serves the downloadable resource library.
package resources

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/controller/catalog"
	"github.com/gywan/gywan-site/internal/db/models"
	"github.com/gywan/gywan-site/internal/storage"
	"github.com/gywan/gywan-site/internal/web/handler"
	"github.com/gywan/gywan-site/internal/web/handler/content"
)

// DownloadPath counts a download and answers with the file URL.
const DownloadPath = "/resources/:id<int>/download"

// Service serves /resources.
type Service struct {
	section content.Section[models.Resource]
	db      *gorm.DB
	store   storage.Store
}

// Handler is the registered resources service.
var Handler = Service{}

type downloadResponse struct {
	Success       bool   `json:"success"`
	DownloadCount int64  `json:"download_count,omitempty"`
	URL           string `json:"url,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Init registers the resource routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, store storage.Store) {
	if app == nil || cfg == nil || db == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.store = store
	s.section = content.Section[models.Resource]{
		Kind:         catalog.KindResource,
		Title:        "Resources",
		ItemTitle:    func(r *models.Resource) string { return r.Title },
		List:         catalog.ListResources,
		Get:          catalog.GetResource,
		ListExtras:   categories,
		DetailExtras: s.fileURL,
	}

	app.Post(DownloadPath, s.Download)
	s.section.Register(app, db)
}

func categories(c *fiber.Ctx, _ *gorm.DB, _ *models.Resource, data fiber.Map) error {
	data["Categories"] = models.ResourceCategories
	data["Category"] = c.Query("category")

	return nil
}

func (s *Service) fileURL(c *fiber.Ctx, _ *gorm.DB, r *models.Resource, data fiber.Map) error {
	if r.FileKey == "" {
		return nil
	}

	u, err := s.store.URL(c.UserContext(), r.FileKey)
	if err != nil {
		log.Error().Err(err).Uint64("id", r.ID).Str("key", r.FileKey).Msg("failed to resolve resource file")
		return nil
	}

	data["FileURL"] = u

	return nil
}

// Download increments the counter of an active resource.
func (s *Service) Download(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(downloadResponse{Error: "Resource not found"})
	}

	res, err := catalog.GetResource(s.db, id)
	if err == nil {
		var count int64

		count, err = catalog.IncrementDownloads(s.db, id)
		if err == nil {
			resp := downloadResponse{Success: true, DownloadCount: count}

			if res.FileKey != "" {
				if resp.URL, err = s.store.URL(c.UserContext(), res.FileKey); err != nil {
					log.Error().Err(err).Uint64("id", id).Msg("failed to resolve resource file")
				}
			}

			return c.JSON(resp)
		}
	}

	if errors.Is(err, catalog.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(downloadResponse{Error: "Resource not found"})
	}

	log.Error().Err(err).Uint64("id", id).Msg("failed to count download")

	return c.Status(fiber.StatusInternalServerError).JSON(downloadResponse{Error: "Internal server error"})
}
