package handler

import (
	"net/http"

	"github.com/datanest-io/datanest/internal/modules/serializer"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type ApiKeyHandler struct {
	svc      service.ApiKeyService
	projects service.ProjectService
}

func NewApiKeyHandler(s service.ApiKeyService, projects service.ProjectService) *ApiKeyHandler {
	return &ApiKeyHandler{svc: s, projects: projects}
}

type CreateApiKeyReq struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions" binding:"omitempty,dive,oneof=read write"`
}

// ListKeys answers the keys of an owned project.
//
//	@Summary	List API keys
//	@Tags		apiKeys
//	@Produce	json
//	@Param		id	path	integer	true	"project id"
//	@Success	200	{object}	serializer.Response{data=[]model.ApiKey}
//	@Router		/projects/{id}/keys [get]
func (h *ApiKeyHandler) ListKeys(c *gin.Context) {
	projectID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if requireOwnedProject(c, h.projects, projectID) == nil {
		return
	}

	keys, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: keys})
}

// CreateKey mints a key for an owned project. The opaque token is only
// shown in this response.
//
//	@Summary	Create API key
//	@Tags		apiKeys
//	@Accept		json
//	@Produce	json
//	@Param		id		path	integer					true	"project id"
//	@Param		payload	body	handler.CreateApiKeyReq	true	"key"
//	@Success	201	{object}	serializer.Response{data=model.ApiKey}
//	@Router		/projects/{id}/keys [post]
func (h *ApiKeyHandler) CreateKey(c *gin.Context) {
	projectID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if requireOwnedProject(c, h.projects, projectID) == nil {
		return
	}

	req := CreateApiKeyReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	key, err := h.svc.Create(c.Request.Context(), projectID, req.Name, req.Permissions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: key})
}

// RevokeKey clears the key's active flag; the row is kept for auditing.
//
//	@Summary	Revoke API key
//	@Tags		apiKeys
//	@Produce	json
//	@Param		id	path	integer	true	"key id"
//	@Success	200	{object}	serializer.Response
//	@Router		/keys/{id} [delete]
func (h *ApiKeyHandler) RevokeKey(c *gin.Context) {
	keyID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	key, err := h.svc.GetByID(c.Request.Context(), keyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	if key == nil {
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
		return
	}
	if requireOwnedProject(c, h.projects, key.ProjectID) == nil {
		return
	}

	if err := h.svc.Revoke(c.Request.Context(), keyID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "revoked"})
}
