package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/pets-service/internal/model"
	"github.com/maxviazov/pets-service/internal/service"
	"github.com/maxviazov/pets-service/pkg/response"
)

// Listing defaults applied when the query string omits limit or page.
const (
	defaultLimit = 10
	defaultPage  = 1
)

type PetHandler struct {
	svc service.PetService
}

func NewPetHandler(svc service.PetService) *PetHandler { return &PetHandler{svc: svc} }

func (h *PetHandler) Register(r *gin.RouterGroup) {
	r.GET("", h.list(nil))

	cat, dog := model.PetTypeCat, model.PetTypeDog
	r.POST("/cats", h.createCat)
	r.GET("/cats", h.list(&cat))
	r.GET("/cats/:id", h.getCat)
	r.GET("/cats-weight", h.catsWeight)

	r.POST("/dogs", h.createDog)
	r.GET("/dogs", h.list(&dog))
	r.GET("/dogs/:id", h.getDog)
	r.GET("/dogs-weight", h.dogsWeight)
	r.GET("/happy-dogs", h.happyDogs)
}

// queryInt reads an optional integer query parameter. Missing means def;
// anything non-numeric is reported as a field error.
func queryInt(c *gin.Context, name string, def int) (int, *service.FieldError) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &service.FieldError{Field: name, Message: "must be a valid integer"}
	}
	return v, nil
}

func (h *PetHandler) list(petType *model.PetType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ferrs []service.FieldError
		limit, fe := queryInt(c, "limit", defaultLimit)
		if fe != nil {
			ferrs = append(ferrs, *fe)
		}
		page, fe := queryInt(c, "page", defaultPage)
		if fe != nil {
			ferrs = append(ferrs, *fe)
		}
		if err := service.NewInvalidInputError(ferrs); err != nil {
			response.WriteError(c, err)
			return
		}

		res, err := h.svc.ListPets(c.Request.Context(), petType, limit, page)
		if err != nil {
			response.WriteError(c, err)
			return
		}
		response.WriteData(c, http.StatusOK, res)
	}
}

func (h *PetHandler) createCat(c *gin.Context) {
	var req service.CreateCatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	cat, err := h.svc.CreateCat(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, cat)
}

func (h *PetHandler) createDog(c *gin.Context) {
	var req service.CreateDogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody(err))
		return
	}
	dog, err := h.svc.CreateDog(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, dog)
}

func (h *PetHandler) getCat(c *gin.Context) {
	cat, err := h.svc.GetCat(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, cat)
}

func (h *PetHandler) getDog(c *gin.Context) {
	dog, err := h.svc.GetDog(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, dog)
}

// catsWeight and dogsWeight answer with a bare JSON number.
func (h *PetHandler) catsWeight(c *gin.Context) {
	sum, err := h.svc.CatsWeight(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, sum)
}

func (h *PetHandler) dogsWeight(c *gin.Context) {
	sum, err := h.svc.DogsWeight(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, sum)
}

func (h *PetHandler) happyDogs(c *gin.Context) {
	names, err := h.svc.HappyDogs(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, names)
}

// malformedBody reports an undecodable JSON body as an invalid input error.
func malformedBody(err error) error {
	return service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "malformed JSON: " + err.Error()}})
}
