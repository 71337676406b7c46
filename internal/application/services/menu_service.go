package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/christoffels/menu/internal/domain/events"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/christoffels/menu/pkg/utils"
)

// MenuService manages the menu catalog
type MenuService struct {
	repo        ports.MenuRepository
	permissions *PermissionService
	validation  *ValidationService
	events      ports.EventPublisher
}

// NewMenuService creates a new MenuService
func NewMenuService(repo ports.MenuRepository, permissions *PermissionService, validation *ValidationService, publisher ports.EventPublisher) *MenuService {
	return &MenuService{
		repo:        repo,
		permissions: permissions,
		validation:  validation,
		events:      publisher,
	}
}

// List returns the items matching the query, sorted as requested
func (s *MenuService) List(ctx context.Context, q models.MenuQuery) ([]models.MenuItem, error) {
	course := models.Course(strings.TrimSpace(string(q.Course)))
	if course != "" && course != constants.CourseAll && !course.IsValid() {
		return nil, errors.NewValidationError(constants.ParamCourse, fmt.Sprintf("unknown course %q", course))
	}

	sortBy := strings.TrimSpace(q.Sort)
	if sortBy == "" {
		sortBy = constants.SortByName
	}
	switch sortBy {
	case constants.SortByName, constants.SortByPriceAsc, constants.SortByPriceDesc:
	default:
		return nil, errors.NewValidationError(constants.ParamSort, fmt.Sprintf("unknown sort %q", sortBy))
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	search := strings.TrimSpace(q.Search)
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if course != "" && course != constants.CourseAll && item.Course != course {
			continue
		}
		if search != "" && !utils.ContainsFold(item.Name, search) && !utils.ContainsFold(item.Description, search) {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, sortBy)
	return out, nil
}

func sortItems(items []models.MenuItem, sortBy string) {
	switch sortBy {
	case constants.SortByPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case constants.SortByPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
}

// Get returns a single item or a NotFoundError
func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("menu item", id)
	}
	return item, nil
}

// Add validates and appends a new item
func (s *MenuService) Add(ctx context.Context, user *models.UserSession, input models.MenuItemInput) (*models.MenuItem, error) {
	if err := s.permissions.Require(user, ActionAddItem); err != nil {
		return nil, err
	}

	item := normalizeItem(models.MenuItem{
		ID:          utils.GenerateID(),
		Name:        input.Name,
		Description: input.Description,
		Course:      input.Course,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	})
	if err := s.validation.ValidateMenuItem(item); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to insert menu item: %w", err)
	}

	publishOrLog(ctx, s.events, events.MenuItemCreated, MenuItemEventPayload{Item: item, Actor: user})
	return &item, nil
}

// Update applies a partial update. Changing the price needs CanEditPrice on top of CanEditItem.
func (s *MenuService) Update(ctx context.Context, user *models.UserSession, id string, patch models.MenuItemPatch) (*models.MenuItem, error) {
	if err := s.permissions.Require(user, ActionEditItem); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ChangesPrice(*existing) {
		if err := s.permissions.Require(user, ActionEditPrice); err != nil {
			return nil, err
		}
	}

	updated := normalizeItem(patch.Apply(*existing))
	if err := s.validation.ValidateMenuItem(updated); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	publishOrLog(ctx, s.events, events.MenuItemUpdated, MenuItemEventPayload{Item: updated, OldItem: existing, Actor: user})
	return &updated, nil
}

// Remove deletes an item by id
func (s *MenuService) Remove(ctx context.Context, user *models.UserSession, id string) error {
	if err := s.permissions.Require(user, ActionRemoveItem); err != nil {
		return err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if !deleted {
		return errors.NewNotFoundError("menu item", id)
	}

	publishOrLog(ctx, s.events, events.MenuItemRemoved, MenuItemEventPayload{Item: *existing, Actor: user})
	return nil
}

// AveragesByCourse returns the mean price per course, rounded to two decimals.
// Courses without items map to nil.
func (s *MenuService) AveragesByCourse(ctx context.Context) (models.CourseAverages, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	sums := make(map[models.Course]float64)
	counts := make(map[models.Course]int)
	for _, item := range items {
		sums[item.Course] += item.Price
		counts[item.Course]++
	}

	averages := make(models.CourseAverages, len(models.Courses()))
	for _, c := range models.Courses() {
		if counts[c] == 0 {
			averages[c] = nil
			continue
		}
		avg := utils.RoundTo(sums[c]/float64(counts[c]), constants.PriceDecimals)
		averages[c] = &avg
	}
	return averages, nil
}

// CourseCounts returns the number of items in each course, preceded by All
func (s *MenuService) CourseCounts(ctx context.Context) ([]models.CourseCount, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	counts := make(map[models.Course]int)
	for _, item := range items {
		counts[item.Course]++
	}

	out := make([]models.CourseCount, 0, len(models.Courses())+1)
	out = append(out, models.CourseCount{Course: constants.CourseAll, Count: len(items)})
	for _, c := range models.Courses() {
		out = append(out, models.CourseCount{Course: c, Count: counts[c]})
	}
	return out, nil
}

func normalizeItem(item models.MenuItem) models.MenuItem {
	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)
	item.Course = models.Course(strings.TrimSpace(string(item.Course)))
	if item.ImageURL != nil {
		img := strings.TrimSpace(*item.ImageURL)
		if img == "" {
			item.ImageURL = nil
		} else {
			item.ImageURL = &img
		}
	}
	return item
}
