package handler

import (
	"net/http"
	"strconv"

	"github.com/datanest-io/datanest/internal/middleware"
	"github.com/datanest-io/datanest/internal/modules/serializer"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Schema      map[string]interface{} `json:"schema"`
}

type UpdateProjectReq struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Schema      map[string]interface{} `json:"schema"`
}

// ListProjects returns the session admin's projects only.
//
//	@Summary	List own projects
//	@Tags		projects
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.Project}
//	@Router		/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	admin := middleware.AdminFrom(c)
	projects, err := h.svc.ListByOwner(c.Request.Context(), admin.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// CreateProject creates a project owned by the session admin.
//
//	@Summary	Create project
//	@Tags		projects
//	@Accept		json
//	@Produce	json
//	@Param		payload	body	handler.CreateProjectReq	true	"project"
//	@Success	201	{object}	serializer.Response{data=model.Project}
//	@Router		/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	admin := middleware.AdminFrom(c)
	project, err := h.svc.Create(c.Request.Context(), admin.ID, req.Name, req.Description, datatypes.JSONMap(req.Schema))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

// GetProject answers one owned project by id.
//
//	@Summary	Get project
//	@Tags		projects
//	@Produce	json
//	@Param		id	path	integer	true	"project id"
//	@Success	200	{object}	serializer.Response{data=model.Project}
//	@Router		/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	project := requireOwnedProject(c, h.svc, id)
	if project == nil {
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// UpdateProject patches name, description and schema of an owned project.
//
//	@Summary	Update project
//	@Tags		projects
//	@Accept		json
//	@Produce	json
//	@Param		id		path	integer						true	"project id"
//	@Param		payload	body	handler.UpdateProjectReq	true	"patch"
//	@Success	200	{object}	serializer.Response
//	@Router		/projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if requireOwnedProject(c, h.svc, id) == nil {
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.UpdateProjectInput{Name: req.Name, Description: req.Description}
	if req.Schema != nil {
		in.Schema = datatypes.JSONMap(req.Schema)
	}

	if err := h.svc.Update(c.Request.Context(), id, in); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "updated"})
}

// DeleteProject soft-deletes: the active flag is cleared, the row stays.
//
//	@Summary	Soft-delete project
//	@Tags		projects
//	@Produce	json
//	@Param		id	path	integer	true	"project id"
//	@Success	200	{object}	serializer.Response
//	@Router		/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if requireOwnedProject(c, h.svc, id) == nil {
		return
	}

	if err := h.svc.SoftDelete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return 0, false
	}
	return uint(v), true
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return 0, false
	}
	return v, true
}
