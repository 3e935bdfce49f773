package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/clothera/catalog-api/internal/cache"
	"github.com/clothera/catalog-api/internal/config"
	"github.com/clothera/catalog-api/internal/database"
	"github.com/clothera/catalog-api/internal/models"
	"github.com/clothera/catalog-api/internal/repository"
)

// seedProduct is one entry of a catalog dump. The shape matches the export
// format of the legacy service so existing dumps load unchanged.
type seedProduct struct {
	Brand        string     `json:"brand"`
	Name         string     `json:"name"`
	Price        int        `json:"price"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Images       []string   `json:"images"`
	HeaderImages []string   `json:"headerImages"`
	Sizes        []seedSize `json:"sizes"`
}

type seedSize struct {
	Name   string `json:"sizeName"`
	Amount int    `json:"amountSize"`
}

// main bulk-imports a catalog dump (local file or HTTP URL) into the
// database. Existing rows are left alone; sizes upsert by (product, name).
func main() {
	var (
		file = pflag.String("file", "", "path to a catalog dump JSON file")
		url  = pflag.String("url", "", "HTTP URL of a catalog dump")
	)
	pflag.Parse()

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	if (*file == "") == (*url == "") {
		fmt.Fprintln(os.Stderr, "exactly one of --file or --url is required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	raw, err := readDump(*file, *url)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read catalog dump")
	}

	var entries []seedProduct
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatal().Err(err).Msg("catalog dump is not valid JSON")
	}

	productRepo := repository.NewProductRepository(db)
	sizeRepo := repository.NewSizeRepository(db)
	imageRepo := repository.NewImageRepository(db)

	imported := 0
	for _, entry := range entries {
		product := models.Product{
			Brand:       entry.Brand,
			Name:        entry.Name,
			Price:       entry.Price,
			Description: entry.Description,
			Category:    entry.Category,
		}
		if err := productRepo.Create(&product); err != nil {
			log.Error().Err(err).Str("name", entry.Name).Msg("failed to import product")
			continue
		}
		for _, img := range entry.Images {
			if err := imageRepo.Create(&models.Image{ProductID: product.ID, Image: img}); err != nil {
				log.Error().Err(err).Int("product_id", product.ID).Msg("failed to import image")
			}
		}
		for _, img := range entry.HeaderImages {
			if err := imageRepo.CreateHeader(&models.HeaderImage{ProductID: product.ID, Image: img}); err != nil {
				log.Error().Err(err).Int("product_id", product.ID).Msg("failed to import header image")
			}
		}
		for _, size := range entry.Sizes {
			if err := sizeRepo.Create(&models.Size{ProductID: product.ID, Name: size.Name, Amount: size.Amount}); err != nil {
				log.Error().Err(err).Int("product_id", product.ID).Str("size", size.Name).Msg("failed to import size")
			}
		}
		imported++
	}

	// Imported rows change the distinct-value sets; drop stale facet entries.
	if redisClient, err := cache.NewRedisClient(&cfg.Redis); err == nil {
		if err := cache.NewFacetCache(redisClient, cfg.Cache.FacetTTL).Invalidate(); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate facet cache")
		}
		_ = redisClient.Close()
	}

	log.Info().Int("imported", imported).Int("total", len(entries)).Msg("catalog import finished")
}

// readDump loads the dump from a file path or an HTTP URL.
func readDump(file, rawURL string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("unsupported URL scheme in %q", rawURL)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s fetching dump", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
