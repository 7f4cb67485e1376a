package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/service"
	"github.com/AliciaPky/Astar/pkg/response"
)

// AccountHandler manages administrator and staff accounts.
type AccountHandler struct {
	school *service.SchoolService
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(school *service.SchoolService) *AccountHandler {
	return &AccountHandler{school: school}
}

// ListAdmins godoc
// @Summary List administrators
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admins [get]
func (h *AccountHandler) ListAdmins(c *gin.Context) {
	admins := h.school.ListAdmins()
	response.List(c, admins, len(admins))
}

// CreateAdmin godoc
// @Summary Create administrator
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body dto.CreateAdminRequest true "Admin payload"
// @Success 201 {object} response.Envelope
// @Router /admins [post]
func (h *AccountHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := bindJSON(c, &req, "invalid admin payload"); err != nil {
		response.Error(c, err)
		return
	}
	admin, err := h.school.CreateAdmin(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}

// UpdateAdmin godoc
// @Summary Update administrator
// @Tags Accounts
// @Accept json
// @Param id path int true "Admin ID"
// @Param payload body dto.UpdateAdminRequest true "Admin payload"
// @Success 204
// @Router /admins/{id} [put]
func (h *AccountHandler) UpdateAdmin(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateAdminRequest
	if err := bindJSON(c, &req, "invalid admin payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.UpdateAdmin(id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteAdmin godoc
// @Summary Remove administrator
// @Description The last remaining administrator cannot be removed.
// @Tags Accounts
// @Param id path int true "Admin ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /admins/{id} [delete]
func (h *AccountHandler) DeleteAdmin(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.DeleteAdmin(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListStaff godoc
// @Summary List staff
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /staff [get]
func (h *AccountHandler) ListStaff(c *gin.Context) {
	staff := h.school.ListStaff()
	response.List(c, staff, len(staff))
}

// CreateStaff godoc
// @Summary Create staff account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body dto.CreateStaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Router /staff [post]
func (h *AccountHandler) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := bindJSON(c, &req, "invalid staff payload"); err != nil {
		response.Error(c, err)
		return
	}
	staff, err := h.school.CreateStaff(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, staff)
}

// UpdateStaff godoc
// @Summary Update staff account
// @Tags Accounts
// @Accept json
// @Param id path int true "Staff ID"
// @Param payload body dto.UpdateStaffRequest true "Staff payload"
// @Success 204
// @Router /staff/{id} [put]
func (h *AccountHandler) UpdateStaff(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateStaffRequest
	if err := bindJSON(c, &req, "invalid staff payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.UpdateStaff(id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteStaff godoc
// @Summary Remove staff account
// @Tags Accounts
// @Param id path int true "Staff ID"
// @Success 204
// @Router /staff/{id} [delete]
func (h *AccountHandler) DeleteStaff(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.school.DeleteStaff(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
