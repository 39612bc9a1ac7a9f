package search

import (
	"context"

	"booksearch/internal/config"
	"booksearch/internal/i18n"
	"booksearch/internal/logger"
	"booksearch/internal/openlibrary"
)

// Client is the upstream the Service queries.
type Client interface {
	Search(ctx context.Context, query string) (*openlibrary.SearchResponse, error)
}

// Service инкапсулирует логику поиска и маппинг результата в BookRecord
type Service struct {
	client Client
	mapper Mapper
}

func New(client Client, mapper Mapper) *Service {
	return &Service{client: client, mapper: mapper}
}

// NewFromConfig wires an Open Library client and a mapper for cfg's locale.
func NewFromConfig(cfg *config.Config) *Service {
	return New(
		openlibrary.New(cfg.OpenLibrary),
		NewMapper(i18n.New(cfg.UI.Locale), cfg.OpenLibrary.CoverURL),
	)
}

// Search runs query and returns at most 24 records in API order.
func (s *Service) Search(ctx context.Context, query string) ([]BookRecord, error) {
	defer logger.Track(ctx, "search "+query)()

	resp, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return s.mapper.MapAll(resp.Docs), nil
}
