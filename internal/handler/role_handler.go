package handler

import (
	"retail-mis-console/internal/model"
	"retail-mis-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	table *service.PermissionTable
}

func NewRoleHandler(table *service.PermissionTable) *RoleHandler {
	return &RoleHandler{table: table}
}

type roleResponse struct {
	model.RoleInfo
	Views []model.ViewID `json:"views"`
}

// GetRoles returns the role catalog with the views each role may open
// GET /api/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles := make([]roleResponse, 0, len(model.Roles))
	for _, info := range model.Roles {
		roles = append(roles, roleResponse{RoleInfo: info, Views: h.table.ViewsFor(info.Code)})
	}
	return c.JSON(roles)
}
