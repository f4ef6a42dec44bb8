package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"itemsvc/internal/domain"
	"itemsvc/internal/http/dto"
)

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err, domain.MsgItemNameRequired)
		return
	}
	created, err := h.svc.CreateItem(c.Request.Context(), string(req.Name))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) CountItems(c *gin.Context) {
	count, err := h.svc.CountItems(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *Handler) SearchItems(c *gin.Context) {
	var query dto.SearchItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.bindFailed(c, err, domain.MsgSearchNameRequired)
		return
	}
	results, err := h.svc.SearchItems(c.Request.Context(), query.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) BulkCreateItems(c *gin.Context) {
	var elements []json.RawMessage
	if err := c.ShouldBindJSON(&elements); err != nil || len(elements) == 0 {
		if err == nil {
			err = errors.New("empty array")
		}
		h.bindFailed(c, err, domain.MsgBulkArrayRequired)
		return
	}

	names := make([]string, 0, len(elements))
	for _, raw := range elements {
		var candidate dto.BulkItem
		if err := json.Unmarshal(raw, &candidate); err != nil {
			continue
		}
		names = append(names, string(candidate.Name))
	}

	added, err := h.svc.BulkCreateItems(c.Request.Context(), names)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.BulkCreateResponse{
		Message: fmt.Sprintf("%d items added", len(added)),
		Added:   added,
	})
}

func (h *Handler) ClearItems(c *gin.Context) {
	if err := h.svc.ClearItems(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: domain.MsgItemsCleared})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err, domain.MsgItemNameRequired)
		return
	}
	if !req.ID.Valid {
		h.respondError(c, domain.NewNotFoundError(domain.MsgItemNotFound))
		return
	}
	updated, err := h.svc.UpdateItem(c.Request.Context(), req.ID.Value, string(req.Name))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := dto.ParseItemID(c.Param("id"))
	if !ok {
		h.respondError(c, domain.NewNotFoundError(domain.MsgItemNotFound))
		return
	}
	item, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
