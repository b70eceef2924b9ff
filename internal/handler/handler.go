package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/pets-service/internal/service"
)

// Deps carries everything the HTTP layer needs from the application.
type Deps struct {
	Store   Pinger
	Storage string
	Pets    service.PetService
	Owners  service.OwnerService
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, d Deps) {
	h := NewHealthHandler(d.Store, d.Storage)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	health := r.Group("/health")
	{
		health.GET("/live", h.Liveness)
		health.GET("/ready", h.Readiness)
	}

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(PetsPrefix)
	{
		NewPetHandler(d.Pets).Register(api)
		NewOwnerHandler(d.Owners).Register(api)
	}
}
