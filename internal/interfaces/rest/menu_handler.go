package rest

import (
	"net/http"

	"github.com/christoffels/menu/internal/application/services"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	svcMgr *services.ServiceManager
}

func NewMenuHandler(svcMgr *services.ServiceManager) *MenuHandler {
	return &MenuHandler{svcMgr: svcMgr}
}

// ListItems handles GET /api/menu/items?search=&course=&sort=
func (h *MenuHandler) ListItems(c *gin.Context) {
	query := models.MenuQuery{
		Search: c.Query(constants.ParamSearch),
		Course: models.Course(c.Query(constants.ParamCourse)),
		Sort:   c.Query(constants.ParamSort),
	}

	items, err := h.svcMgr.Menu.List(c.Request.Context(), query)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.ResponseItems: items,
		"count":                 len(items),
	})
}

// GetItem handles GET /api/menu/items/:id
func (h *MenuHandler) GetItem(c *gin.Context) {
	HandleGetEnvelope(c, constants.ResponseItem, func() (interface{}, error) {
		return h.svcMgr.Menu.Get(c.Request.Context(), c.Param("id"))
	})
}

// CreateItem handles POST /api/menu/items
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var input models.MenuItemInput
	if !BindJSON(c, &input) {
		return
	}
	HandleMutationEnvelope(c, http.StatusCreated, constants.ResponseItem, "Menu item created successfully", func() (interface{}, error) {
		return h.svcMgr.Menu.Add(c.Request.Context(), GetUserFromContext(c), input)
	})
}

// UpdateItem handles PATCH /api/menu/items/:id
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	var patch models.MenuItemPatch
	if !BindJSON(c, &patch) {
		return
	}
	HandleMutationEnvelope(c, http.StatusOK, constants.ResponseItem, "Menu item updated successfully", func() (interface{}, error) {
		return h.svcMgr.Menu.Update(c.Request.Context(), GetUserFromContext(c), c.Param("id"), patch)
	})
}

// DeleteItem handles DELETE /api/menu/items/:id
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	HandleDeleteEnvelope(c, "Menu item removed successfully", func() error {
		return h.svcMgr.Menu.Remove(c.Request.Context(), GetUserFromContext(c), c.Param("id"))
	})
}

// GetAverages handles GET /api/menu/averages
func (h *MenuHandler) GetAverages(c *gin.Context) {
	HandleGetEnvelope(c, "averages", func() (interface{}, error) {
		return h.svcMgr.Menu.AveragesByCourse(c.Request.Context())
	})
}

// GetCourses handles GET /api/menu/courses
func (h *MenuHandler) GetCourses(c *gin.Context) {
	HandleGetEnvelope(c, "courses", func() (interface{}, error) {
		return h.svcMgr.Menu.CourseCounts(c.Request.Context())
	})
}
