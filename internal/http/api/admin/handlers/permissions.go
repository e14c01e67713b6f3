package handlers

import (
	"net/http"

	"github.com/contentforge/contentforge-api/internal/http/api/admin/permissions"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/gin-gonic/gin"
)

// PermissionHandler exposes the admin endpoint catalog.
type PermissionHandler struct {
	resp *shared.Responder
}

// NewPermissionHandler constructs a PermissionHandler.
func NewPermissionHandler(resp *shared.Responder) *PermissionHandler {
	return &PermissionHandler{resp: resp}
}

// List returns every admin endpoint definition.
func (h *PermissionHandler) List(c *gin.Context) {
	h.resp.OK(c, http.StatusOK, "admin.permissions", gin.H{
		"permissions": permissions.Definitions(),
		"modules":     permissions.Modules(),
	})
}
