package graph

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"

	"github.com/ZamarianPatrick/mygarden-backend/garden"
	"github.com/ZamarianPatrick/mygarden-backend/graph/model"
)

func (r *Resolver) health(c *gin.Context) {
	c.JSON(http.StatusOK, model.Health{
		Status:   "healthy",
		Version:  r.version,
		Surfaces: len(r.controller.Surfaces()),
	})
}

func (r *Resolver) plants(c *gin.Context) {
	plants, err := r.controller.Plants(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]model.Plant, 0, len(plants))
	for _, p := range plants {
		out = append(out, model.NewPlant(p, r.controller.State(p)))
	}
	c.JSON(http.StatusOK, out)
}

func (r *Resolver) plant(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	p, err := r.controller.Plant(c.Request.Context(), id)
	switch {
	case errors.Is(err, errors.NotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.NewPlant(p, r.controller.State(p)))
}

func (r *Resolver) createPlant(c *gin.Context) {
	var input model.PlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	plantType, ok := garden.ParsePlantType(input.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown plant type " + strconv.Quote(input.Type)})
		return
	}
	p, err := r.controller.CreatePlant(c.Request.Context(), plantType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.NewPlant(p, r.controller.State(p)))
}

// waterPlant only queues the watering; unknown or unwaterable plants are
// ignored by the queue.
func (r *Resolver) waterPlant(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}
	r.controller.Queue().EnqueueWaterPlant(id)
	c.Status(http.StatusAccepted)
}

func (r *Resolver) refresh(c *gin.Context) {
	r.controller.Queue().EnqueueRefreshAll()
	c.Status(http.StatusAccepted)
}

func (r *Resolver) surfaces(c *gin.Context) {
	c.JSON(http.StatusOK, r.controller.Surfaces())
}

func (r *Resolver) pressButton(c *gin.Context) {
	err := r.controller.PressFakeButton()
	switch {
	case errors.Is(err, errors.NotSupported):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusAccepted)
	}
}

func plantID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == garden.InvalidPlantID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plant id"})
		return 0, false
	}
	return id, true
}
