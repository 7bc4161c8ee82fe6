package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cameshop/cameshop-api/internal/core/domain"
	"github.com/cameshop/cameshop-api/internal/core/ports"
)

// ItemService implements catalog CRUD.
type ItemService struct {
	repo ports.ItemRepository
	log  zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, log zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, log: log}
}

func (s *ItemService) Create(ctx context.Context, input ports.ItemInput) (*domain.Item, error) {
	item := &domain.Item{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", created.ID).Str("name", created.Name).Msg("item created")
	return created, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all catalog items, optionally filtered by a case-insensitive
// substring match on the item name.
func (s *ItemService) List(ctx context.Context, nameFilter string) ([]*domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if nameFilter == "" {
		return items, nil
	}

	needle := strings.ToLower(nameFilter)
	filtered := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *ItemService) Update(ctx context.Context, id string, input ports.ItemInput) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", id).Msg("item updated")
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("item_id", id).Msg("item deleted")
	return nil
}
