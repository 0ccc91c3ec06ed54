package api

import (
	"errors"
	"net/http"

	"guildhall/internal/domain/plan"
	"guildhall/internal/domain/room"
	reqdto "guildhall/internal/handler/dto/request"
	resdto "guildhall/internal/handler/dto/response"
	"guildhall/internal/usecase/commands"
	"guildhall/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogCommands commands.CatalogCommands
	catalogQueries  queries.CatalogQueries
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands, catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
		catalogQueries:  catalogQueries,
	}
}

// @Summary List rooms
// @Description List bookable rooms
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.RoomView
// @Failure 401 {object} map[string]string
// @Router /rooms [get]
func (h *CatalogHandler) GetRooms(c *gin.Context) {
	views, err := h.catalogQueries.Rooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List plans
// @Description List membership plans
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.PlanView
// @Failure 401 {object} map[string]string
// @Router /plans [get]
func (h *CatalogHandler) GetPlans(c *gin.Context) {
	views, err := h.catalogQueries.Plans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Create room
// @Description Administrator adds a room
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room request"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /rooms [post]
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.catalogCommands.CreateRoom(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, room.ErrEmptyName) || errors.Is(err, room.ErrInvalidCapacity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Create plan
// @Description Administrator adds a membership plan
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePlanRequest true "Plan request"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /plans [post]
func (h *CatalogHandler) CreatePlan(c *gin.Context) {
	var req reqdto.CreatePlanRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.catalogCommands.CreatePlan(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, plan.ErrEmptyName) || errors.Is(err, plan.ErrNegativePrice) || errors.Is(err, plan.ErrNegativeQuota) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}
