package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/pets-service/internal/service"
	"github.com/maxviazov/pets-service/pkg/response"
	"github.com/rs/zerolog/log"
)

// serviceTimeout bounds the ranking, which issues several store queries.
const serviceTimeout = 5 * time.Second

type OwnerHandler struct {
	svc service.OwnerService
}

func NewOwnerHandler(svc service.OwnerService) *OwnerHandler { return &OwnerHandler{svc: svc} }

func (h *OwnerHandler) Register(r *gin.RouterGroup) {
	r.POST("/owners", h.create)
	r.GET("/owners/:id", h.getByID)
	r.GET("/top-owners/:age", h.topOwners)
}

func (h *OwnerHandler) create(c *gin.Context) {
	var req service.CreateOwnerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	owner, err := h.svc.CreateOwner(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, owner)
}

func (h *OwnerHandler) getByID(c *gin.Context) {
	owner, err := h.svc.GetOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, owner)
}

// topOwners handles requests for the owner ranking at an exact age.
func (h *OwnerHandler) topOwners(c *gin.Context) {
	start := time.Now()
	age, err := strconv.Atoi(strings.TrimSpace(c.Param("age")))
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "age", Message: "must be a valid integer"}}))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	groups, err := h.svc.TopOwnersAtAge(ctx, age)

	logger := log.With().
		Str("path", c.Request.URL.Path).
		Int("age", age).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		status, _ := response.MapError(err)
		logger.Error().Err(err).Int("status", status).Msg("failed to rank owners")
		response.WriteError(c, err)
		return
	}

	logger.Debug().Int("groups", len(groups)).Msg("owner ranking computed")
	response.WriteData(c, http.StatusOK, groups)
}
