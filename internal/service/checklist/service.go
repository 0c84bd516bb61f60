package checklist

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
)

type checklistService struct {
	items     checklist.Repository
	locations location.Repository
}

// NewChecklistService creates the checklist management service.
func NewChecklistService(items checklist.Repository, locations location.Repository) checklist.Service {
	return &checklistService{
		items:     items,
		locations: locations,
	}
}

// CreateItems implements checklist.Service. New items are appended after the
// existing set so admin ordering stays stable.
func (s *checklistService) CreateItems(ctx context.Context, req checklist.CreateItemsRequest) ([]checklist.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.LocationID != nil {
		if _, err := s.locations.GetByID(ctx, *req.LocationID); err != nil {
			return nil, err
		}
	}

	existing, err := s.items.List(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	nextOrder := 0
	for _, item := range existing {
		if item.SortOrder >= nextOrder {
			nextOrder = item.SortOrder + 1
		}
	}

	items := make([]checklist.Item, 0, len(req.Labels))
	for i, label := range req.Labels {
		items = append(items, checklist.Item{
			Label:      label,
			IsDefault:  req.LocationID == nil,
			LocationID: req.LocationID,
			SortOrder:  nextOrder + i,
			IsActive:   true,
		})
	}

	created, err := s.items.CreateBatch(ctx, items)
	if err != nil {
		return nil, err
	}

	responses := make([]checklist.ItemResponse, 0, len(created))
	for _, item := range created {
		responses = append(responses, toResponse(item))
	}

	return responses, nil
}

// List implements checklist.Service.
func (s *checklistService) List(ctx context.Context, locationID *string) ([]checklist.ItemResponse, error) {
	items, err := s.items.List(ctx, locationID)
	if err != nil {
		return nil, err
	}

	responses := make([]checklist.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toResponse(item))
	}

	return responses, nil
}

// SetActive implements checklist.Service.
func (s *checklistService) SetActive(ctx context.Context, id string, active bool) (checklist.ItemResponse, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return checklist.ItemResponse{}, err
	}

	if err := s.items.SetActive(ctx, id, active); err != nil {
		return checklist.ItemResponse{}, err
	}

	item.IsActive = active
	return toResponse(item), nil
}

func toResponse(item checklist.Item) checklist.ItemResponse {
	return checklist.ItemResponse{
		ID:         item.ID,
		Label:      item.Label,
		IsDefault:  item.IsDefault,
		LocationID: item.LocationID,
		SortOrder:  item.SortOrder,
		IsActive:   item.IsActive,
	}
}
