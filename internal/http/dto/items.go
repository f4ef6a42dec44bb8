package dto

import "itemsvc/internal/model"

type CreateItemRequest struct {
	Name ItemName `json:"name" binding:"required"`
}

type SearchItemsQuery struct {
	Name string `form:"name" binding:"required"`
}

// BulkItem is one element of a bulk create body. Elements that do not decode
// into it, or carry an empty name, are skipped.
type BulkItem struct {
	Name ItemName `json:"name"`
}

// UpdateItemRequest leaves both fields optional: an unknown id is reported
// before a missing name.
type UpdateItemRequest struct {
	ID   ItemID   `json:"id"`
	Name ItemName `json:"name"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type BulkCreateResponse struct {
	Message string       `json:"message"`
	Added   []model.Item `json:"added"`
}
