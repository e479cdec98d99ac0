package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/datanest-io/datanest/internal/middleware"
	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// Pagination bounds for the external list endpoint.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// ExternalHandler is the API-key-authenticated surface third parties use.
// The resolved key's project id scopes every operation; the key and owner
// are never echoed back.
type ExternalHandler struct {
	data     service.DynamicDataService
	projects service.ProjectService
}

func NewExternalHandler(data service.DynamicDataService, projects service.ProjectService) *ExternalHandler {
	return &ExternalHandler{data: data, projects: projects}
}

// dataItem is the external wire shape of a record.
type dataItem struct {
	ID        int64           `json:"id"`
	UserID    *string         `json:"userId,omitempty"`
	DataType  *string         `json:"dataType,omitempty"`
	Data      json.RawMessage `json:"data"`
	IsPublic  bool            `json:"isPublic"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toDataItem(d *model.DynamicData) dataItem {
	return dataItem{
		ID:        d.ID,
		UserID:    d.UserID,
		DataType:  d.DataType,
		Data:      json.RawMessage(d.Data),
		IsPublic:  d.IsPublic,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDataItems(items []model.DynamicData) []dataItem {
	out := make([]dataItem, 0, len(items))
	for i := range items {
		out = append(out, toDataItem(&items[i]))
	}
	return out
}

func externalErr(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// ListData pages the key's project data. limit defaults to 100 and is
// clamped to 1000; offset defaults to 0.
func (h *ExternalHandler) ListData(c *gin.Context) {
	key := middleware.ApiKeyFrom(c)

	limit := DefaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}

	out, err := h.data.List(c.Request.Context(), service.ListDataInput{
		ProjectID: key.ProjectID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toDataItems(out.Items),
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
			"total":  out.Total,
		},
	})
}

type externalCreateReq struct {
	Data     json.RawMessage `json:"data"`
	UserID   *string         `json:"userId"`
	DataType *string         `json:"dataType"`
	IsPublic bool            `json:"isPublic"`
}

// CreateData stores a document under the key's project. A missing payload
// is a 400, not a 500.
func (h *ExternalHandler) CreateData(c *gin.Context) {
	key := middleware.ApiKeyFrom(c)

	req := externalCreateReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		externalErr(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Data) == 0 {
		externalErr(c, http.StatusBadRequest, "Missing required field: data")
		return
	}

	record, err := h.data.Insert(c.Request.Context(), service.InsertDataInput{
		ProjectID: key.ProjectID,
		UserID:    req.UserID,
		DataType:  req.DataType,
		Data:      datatypes.JSON(req.Data),
		IsPublic:  req.IsPublic,
	})
	if err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Data created",
		"result":  toDataItem(record),
	})
}

type externalUpdateReq struct {
	Data json.RawMessage `json:"data"`
}

// UpdateData replaces a record's payload. Records outside the key's project
// answer 404 rather than leaking existence.
func (h *ExternalHandler) UpdateData(c *gin.Context) {
	key := middleware.ApiKeyFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		externalErr(c, http.StatusBadRequest, "Invalid data id")
		return
	}

	req := externalUpdateReq{}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Data) == 0 {
		externalErr(c, http.StatusBadRequest, "Missing required field: data")
		return
	}

	record, err := h.data.GetByID(c.Request.Context(), id)
	if err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil || record.ProjectID != key.ProjectID {
		externalErr(c, http.StatusNotFound, "Data not found")
		return
	}

	if err := h.data.Update(c.Request.Context(), id, datatypes.JSON(req.Data)); err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Reflect the write in the echoed record; the row's updated_at was
	// just refreshed by the update.
	record.Data = datatypes.JSON(req.Data)
	record.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data updated",
		"result":  toDataItem(record),
	})
}

// DeleteData hard-deletes a record in the key's project.
func (h *ExternalHandler) DeleteData(c *gin.Context) {
	key := middleware.ApiKeyFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		externalErr(c, http.StatusBadRequest, "Invalid data id")
		return
	}

	record, err := h.data.GetByID(c.Request.Context(), id)
	if err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil || record.ProjectID != key.ProjectID {
		externalErr(c, http.StatusNotFound, "Data not found")
		return
	}

	if err := h.data.Delete(c.Request.Context(), id); err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data deleted",
		"result":  toDataItem(record),
	})
}

// SearchData filters the key's project data by optional userId/dataType.
func (h *ExternalHandler) SearchData(c *gin.Context) {
	key := middleware.ApiKeyFrom(c)

	filters := repo.SearchDataFilters{}
	if v, ok := c.GetQuery("userId"); ok {
		filters.UserID = &v
	}
	if v, ok := c.GetQuery("dataType"); ok {
		filters.DataType = &v
	}

	items, err := h.data.Search(c.Request.Context(), key.ProjectID, filters)
	if err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}

	echo := gin.H{}
	if filters.UserID != nil {
		echo["userId"] = *filters.UserID
	}
	if filters.DataType != nil {
		echo["dataType"] = *filters.DataType
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toDataItems(items),
		"filters": echo,
	})
}

// GetProject answers the key's project metadata. The key string and the
// owner id stay private.
func (h *ExternalHandler) GetProject(c *gin.Context) {
	key := middleware.ApiKeyFrom(c)

	project, err := h.projects.GetByID(c.Request.Context(), key.ProjectID)
	if err != nil {
		externalErr(c, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		externalErr(c, http.StatusNotFound, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": gin.H{
			"id":          project.ID,
			"name":        project.Name,
			"description": project.Description,
			"isActive":    project.IsActive,
			"createdAt":   project.CreatedAt,
		},
	})
}

// Health is the only unauthenticated external endpoint.
func (h *ExternalHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
