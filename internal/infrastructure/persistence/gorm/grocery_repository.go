package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/ports/outbound"
)

// GroceryStore implements the grocery store interface using GORM
type GroceryStore struct {
	db *gorm.DB
}

// NewGroceryStore creates a new grocery store
func NewGroceryStore(db *gorm.DB) outbound.GroceryStore {
	return &GroceryStore{db: db}
}

// GetOrCreateDefault returns the default list, creating it on first use
func (s *GroceryStore) GetOrCreateDefault(ctx context.Context) (*grocery.GroceryList, error) {
	var model GroceryListModel

	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("name = ?", grocery.DefaultListName).
		First(&model).Error
	if err == nil {
		return toGroceryListDomain(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	list, err := grocery.NewList(grocery.DefaultListName)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(toGroceryListModel(list)).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindByID finds a list by ID, items included
func (s *GroceryStore) FindByID(ctx context.Context, id uuid.UUID) (*grocery.GroceryList, error) {
	var model GroceryListModel

	result := s.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, grocery.ErrListNotFound
		}
		return nil, result.Error
	}

	return toGroceryListDomain(&model), nil
}

// Save persists the list, replacing its item rows. Items are merged in
// memory by the aggregate, so the row set is rewritten wholesale.
func (s *GroceryStore) Save(ctx context.Context, list *grocery.GroceryList) error {
	model := toGroceryListModel(list)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", list.ID()).Delete(&GroceryItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Save(&GroceryListModel{
			ID:        model.ID,
			Name:      model.Name,
			CreatedAt: model.CreatedAt,
			UpdatedAt: model.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
