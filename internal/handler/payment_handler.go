package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/response"
)

// PaymentHandler exposes the finance log.
type PaymentHandler struct {
	school *service.SchoolService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(school *service.SchoolService) *PaymentHandler {
	return &PaymentHandler{school: school}
}

// Record godoc
// @Summary Record payment
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body dto.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.PaymentRequest
	if err := bindJSON(c, &req, "invalid payment payload"); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.school.RecordPayment(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// List godoc
// @Summary Finance log
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments := h.school.FinanceLog()
	response.List(c, payments, len(payments))
}
