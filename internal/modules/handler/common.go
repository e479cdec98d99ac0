package handler

import (
	"net/http"

	"github.com/datanest-io/datanest/internal/middleware"
	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/serializer"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/gin-gonic/gin"
)

// requireOwnedProject re-fetches the project and verifies the session admin
// owns it. The check runs fresh on every call; a prior call's result is
// never reused. Absence and mismatch both answer 403 so callers cannot
// probe for project ids they do not own.
func requireOwnedProject(c *gin.Context, projects service.ProjectService, id uint) *model.Project {
	admin := middleware.AdminFrom(c)
	if admin == nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("unauthorized"))
		return nil
	}

	project, err := projects.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return nil
	}
	if project == nil || project.OwnerID != admin.ID {
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr("you do not own this project"))
		return nil
	}
	return project
}
