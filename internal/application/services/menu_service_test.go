package services

import (
	"context"
	"testing"

	"github.com/christoffels/menu/internal/domain/events"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func addItem(t *testing.T, sm *ServiceManager, name string, course models.Course, price float64) *models.MenuItem {
	t.Helper()
	item, err := sm.Menu.Add(context.Background(), testUser(models.RoleOwner), models.MenuItemInput{
		Name: name, Description: name + " description", Course: course, Price: price,
	})
	require.NoError(t, err)
	return item
}

func TestMenuList_SearchCourseAndSort(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()
	addItem(t, sm, "apple Crumble", models.CourseDesserts, 45)
	addItem(t, sm, "Rooibos Tea", models.CourseDrinks, 25)

	all, err := sm.Menu.List(ctx, models.MenuQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple Crumble", "Grilled Ribeye", "Rooibos Tea", "Tomato Bruschetta"}, names(all))

	byPrice, err := sm.Menu.List(ctx, models.MenuQuery{Sort: constants.SortByPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rooibos Tea", "apple Crumble", "Tomato Bruschetta", "Grilled Ribeye"}, names(byPrice))

	desc, err := sm.Menu.List(ctx, models.MenuQuery{Sort: constants.SortByPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, "Grilled Ribeye", desc[0].Name)

	mains, err := sm.Menu.List(ctx, models.MenuQuery{Course: models.CourseMains})
	require.NoError(t, err)
	assert.Equal(t, []string{"Grilled Ribeye"}, names(mains))

	everything, err := sm.Menu.List(ctx, models.MenuQuery{Course: constants.CourseAll})
	require.NoError(t, err)
	assert.Len(t, everything, 4)

	// description matches count too
	basil, err := sm.Menu.List(ctx, models.MenuQuery{Search: "BASIL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Bruschetta"}, names(basil))

	none, err := sm.Menu.List(ctx, models.MenuQuery{Search: "ribeye", Course: models.CourseStarters})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMenuList_RejectsUnknownFilters(t *testing.T) {
	sm, _ := newTestManager(t)

	_, err := sm.Menu.List(context.Background(), models.MenuQuery{Course: "Dessert"})
	assert.True(t, errors.IsValidation(err))

	_, err = sm.Menu.List(context.Background(), models.MenuQuery{Sort: "rating"})
	assert.True(t, errors.IsValidation(err))
}

func TestMenuGet(t *testing.T) {
	sm, _ := newTestManager(t)

	item, err := sm.Menu.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Bruschetta", item.Name)

	_, err = sm.Menu.Get(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestMenuAdd_Permissions(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()
	input := models.MenuItemInput{Name: " Chips ", Description: "Hand cut", Course: models.CourseSideDishes, Price: 35}

	var created []MenuItemEventPayload
	sm.EventBus.Subscribe(events.MenuItemCreated, func(ctx context.Context, payload interface{}) error {
		created = append(created, payload.(MenuItemEventPayload))
		return nil
	})

	item, err := sm.Menu.Add(ctx, testUser(models.RoleEmployee), input)
	require.NoError(t, err)
	assert.Equal(t, "Chips", item.Name)
	_, err = uuid.Parse(item.ID)
	assert.NoError(t, err)
	assert.Len(t, created, 1)

	_, err = sm.Menu.Add(ctx, testUser(models.RoleCustomer), input)
	assert.True(t, errors.IsPermission(err))

	_, err = sm.Menu.Add(ctx, nil, input)
	assert.True(t, errors.IsPermission(err))

	input.Price = 0
	_, err = sm.Menu.Add(ctx, testUser(models.RoleOwner), input)
	assert.True(t, errors.IsValidation(err))
}

func TestMenuUpdate_PriceNeedsOwner(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	name := "Bruschetta"
	updated, err := sm.Menu.Update(ctx, testUser(models.RoleEmployee), "1", models.MenuItemPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bruschetta", updated.Name)
	assert.Equal(t, 65.0, updated.Price)

	same := 65.0
	_, err = sm.Menu.Update(ctx, testUser(models.RoleEmployee), "1", models.MenuItemPatch{Price: &same})
	assert.NoError(t, err)

	price := 70.0
	_, err = sm.Menu.Update(ctx, testUser(models.RoleEmployee), "1", models.MenuItemPatch{Price: &price})
	assert.True(t, errors.IsPermission(err))

	updated, err = sm.Menu.Update(ctx, testUser(models.RoleOwner), "1", models.MenuItemPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 70.0, updated.Price)

	_, err = sm.Menu.Update(ctx, testUser(models.RoleCustomer), "1", models.MenuItemPatch{Name: &name})
	assert.True(t, errors.IsPermission(err))

	_, err = sm.Menu.Update(ctx, testUser(models.RoleOwner), "missing", models.MenuItemPatch{Name: &name})
	assert.True(t, errors.IsNotFound(err))

	blank := " "
	_, err = sm.Menu.Update(ctx, testUser(models.RoleOwner), "1", models.MenuItemPatch{Name: &blank})
	assert.True(t, errors.IsValidation(err))
}

func TestMenuRemove(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	err := sm.Menu.Remove(ctx, testUser(models.RoleEmployee), "1")
	assert.True(t, errors.IsPermission(err))

	require.NoError(t, sm.Menu.Remove(ctx, testUser(models.RoleOwner), "1"))
	_, err = sm.Menu.Get(ctx, "1")
	assert.True(t, errors.IsNotFound(err))

	err = sm.Menu.Remove(ctx, testUser(models.RoleOwner), "1")
	assert.True(t, errors.IsNotFound(err))
}

func TestAveragesByCourse(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()
	addItem(t, sm, "Calamari", models.CourseStarters, 80)
	addItem(t, sm, "Soup", models.CourseStarters, 50.5)
	addItem(t, sm, "Ice Cream", models.CourseDesserts, 40)

	averages, err := sm.Menu.AveragesByCourse(ctx)
	require.NoError(t, err)
	require.Len(t, averages, 5)

	require.NotNil(t, averages[models.CourseStarters])
	assert.Equal(t, 65.17, *averages[models.CourseStarters])
	assert.Equal(t, 220.0, *averages[models.CourseMains])
	assert.Equal(t, 40.0, *averages[models.CourseDesserts])
	assert.Nil(t, averages[models.CourseSideDishes])
	assert.Nil(t, averages[models.CourseDrinks])
}

func TestCourseCounts(t *testing.T) {
	sm, _ := newTestManager(t)
	addItem(t, sm, "Coffee", models.CourseDrinks, 30)

	counts, err := sm.Menu.CourseCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 6)
	assert.Equal(t, models.CourseCount{Course: constants.CourseAll, Count: 3}, counts[0])
	assert.Equal(t, models.CourseCount{Course: models.CourseStarters, Count: 1}, counts[1])
	assert.Equal(t, models.CourseCount{Course: models.CourseSideDishes, Count: 0}, counts[3])
	assert.Equal(t, models.CourseCount{Course: models.CourseDrinks, Count: 1}, counts[5])
}
