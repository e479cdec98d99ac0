package handler

import (
	"encoding/json"
	"net/http"

	"github.com/datanest-io/datanest/internal/modules/repo"
	"github.com/datanest-io/datanest/internal/modules/serializer"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// DataHandler is the panel-facing dynamic data surface. The external
// API-key surface lives in ExternalHandler.
type DataHandler struct {
	svc      service.DynamicDataService
	projects service.ProjectService
}

func NewDataHandler(s service.DynamicDataService, projects service.ProjectService) *DataHandler {
	return &DataHandler{svc: s, projects: projects}
}

type ListDataReq struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=1000"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

type CreateDataReq struct {
	Data     json.RawMessage `json:"data" binding:"required"`
	UserID   *string         `json:"user_id"`
	DataType *string         `json:"data_type"`
	IsPublic bool            `json:"is_public"`
}

type UpdateDataReq struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

type SearchDataReq struct {
	UserID   *string `form:"user_id"`
	DataType *string `form:"data_type"`
}

// ListData pages an owned project's records.
//
//	@Summary	List dynamic data
//	@Tags		data
//	@Produce	json
//	@Param		id		path	integer	true	"project id"
//	@Param		limit	query	integer	false	"page size"
//	@Param		offset	query	integer	false	"page start"
//	@Success	200	{object}	serializer.Response{data=service.ListDataOutput}
//	@Router		/projects/{id}/data [get]
func (h *DataHandler) ListData(c *gin.Context) {
	projectID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if requireOwnedProject(c, h.projects, projectID) == nil {
		return
	}

	req := ListDataReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListDataInput{
		ProjectID: projectID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// CreateData stores a JSON document under an owned project.
//
//	@Summary	Create dynamic data
//	@Tags		data
//	@Accept		json
//	@Produce	json
//	@Param		id		path	integer					true	"project id"
//	@Param		payload	body	handler.CreateDataReq	true	"record"
//	@Success	201	{object}	serializer.Response{data=model.DynamicData}
//	@Router		/projects/{id}/data [post]
func (h *DataHandler) CreateData(c *gin.Context) {
	projectID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if requireOwnedProject(c, h.projects, projectID) == nil {
		return
	}

	req := CreateDataReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	record, err := h.svc.Insert(c.Request.Context(), service.InsertDataInput{
		ProjectID: projectID,
		UserID:    req.UserID,
		DataType:  req.DataType,
		Data:      datatypes.JSON(req.Data),
		IsPublic:  req.IsPublic,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: record})
}

// UpdateData replaces a record's payload after re-checking ownership of the
// record's project.
//
//	@Summary	Update dynamic data
//	@Tags		data
//	@Accept		json
//	@Produce	json
//	@Param		id		path	integer					true	"record id"
//	@Param		payload	body	handler.UpdateDataReq	true	"new payload"
//	@Success	200	{object}	serializer.Response
//	@Router		/data/{id} [put]
func (h *DataHandler) UpdateData(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	record, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	if record == nil {
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
		return
	}
	if requireOwnedProject(c, h.projects, record.ProjectID) == nil {
		return
	}

	req := UpdateDataReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, datatypes.JSON(req.Data)); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "updated"})
}

// DeleteData removes a record for good. Dynamic data has no soft delete.
//
//	@Summary	Delete dynamic data
//	@Tags		data
//	@Produce	json
//	@Param		id	path	integer	true	"record id"
//	@Success	200	{object}	serializer.Response
//	@Router		/data/{id} [delete]
func (h *DataHandler) DeleteData(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	record, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	if record == nil {
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
		return
	}
	if requireOwnedProject(c, h.projects, record.ProjectID) == nil {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

// SearchData filters an owned project's records by the optional user id and
// data type tags.
//
//	@Summary	Search dynamic data
//	@Tags		data
//	@Produce	json
//	@Param		id			path	integer	true	"project id"
//	@Param		user_id		query	string	false	"external user id filter"
//	@Param		data_type	query	string	false	"data type filter"
//	@Success	200	{object}	serializer.Response{data=[]model.DynamicData}
//	@Router		/projects/{id}/data/search [get]
func (h *DataHandler) SearchData(c *gin.Context) {
	projectID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if requireOwnedProject(c, h.projects, projectID) == nil {
		return
	}

	req := SearchDataReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.Search(c.Request.Context(), projectID, repo.SearchDataFilters{
		UserID:   req.UserID,
		DataType: req.DataType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}
