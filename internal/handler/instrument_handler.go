package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/response"
)

// InstrumentHandler exposes the instrument catalogue.
type InstrumentHandler struct {
	school *service.SchoolService
}

// NewInstrumentHandler constructs InstrumentHandler.
func NewInstrumentHandler(school *service.SchoolService) *InstrumentHandler {
	return &InstrumentHandler{school: school}
}

// List godoc
// @Summary List instruments
// @Tags Instruments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /instruments [get]
func (h *InstrumentHandler) List(c *gin.Context) {
	instruments := h.school.ListInstruments()
	response.List(c, instruments, len(instruments))
}

// Create godoc
// @Summary Add instrument
// @Tags Instruments
// @Accept json
// @Param payload body dto.InstrumentRequest true "Instrument"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /instruments [post]
func (h *InstrumentHandler) Create(c *gin.Context) {
	var req dto.InstrumentRequest
	if err := bindJSON(c, &req, "invalid instrument payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.AddInstrument(req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"name": req.Name})
}

// Rename godoc
// @Summary Rename instrument
// @Description Renames the instrument and relabels every course that used it.
// @Tags Instruments
// @Accept json
// @Param name path string true "Current name"
// @Param payload body dto.InstrumentRequest true "New name"
// @Success 200 {object} response.Envelope
// @Router /instruments/{name} [put]
func (h *InstrumentHandler) Rename(c *gin.Context) {
	var req dto.InstrumentRequest
	if err := bindJSON(c, &req, "invalid instrument payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.RenameInstrument(c.Param("name"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"name": req.Name})
}

// Delete godoc
// @Summary Remove instrument
// @Tags Instruments
// @Param name path string true "Instrument name"
// @Success 204
// @Router /instruments/{name} [delete]
func (h *InstrumentHandler) Delete(c *gin.Context) {
	if err := h.school.RemoveInstrument(c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
