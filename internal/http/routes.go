package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"itemsvc/internal/apidocs"
	"itemsvc/internal/http/controller"
)

// Route pairs a handler with its documented contract. Routes are registered
// in table order.
type Route struct {
	apidocs.Endpoint
	Handler gin.HandlerFunc
}

// Routes is the ordered route table. Literal /items/* paths come before
// /items/:id so they are never captured as an id.
func Routes(h *controller.Handler) []Route {
	return []Route{
		{Endpoint: apidocs.Endpoint{Method: http.MethodGet, Path: "/items", Summary: "List items", Response: "Item[]"},
			Handler: h.ListItems},
		{Endpoint: apidocs.Endpoint{Method: http.MethodPost, Path: "/items", Summary: "Create an item",
			Request: "NewItem", Response: "Item", Success: http.StatusCreated, Errors: []int{http.StatusBadRequest}},
			Handler: h.CreateItem},
		{Endpoint: apidocs.Endpoint{Method: http.MethodGet, Path: "/status", Summary: "Service status", Response: "Status"},
			Handler: h.Status},
		{Endpoint: apidocs.Endpoint{Method: http.MethodPost, Path: "/users", Summary: "Create a user",
			Request: "NewUser", Response: "User", Success: http.StatusCreated, Errors: []int{http.StatusBadRequest}},
			Handler: h.CreateUser},
		{Endpoint: apidocs.Endpoint{Method: http.MethodGet, Path: "/items/count", Summary: "Count items", Response: "Count"},
			Handler: h.CountItems},
		{Endpoint: apidocs.Endpoint{Method: http.MethodGet, Path: "/items/search", Summary: "Search items by name",
			Query: []string{"name"}, Response: "Item[]", Errors: []int{http.StatusBadRequest}},
			Handler: h.SearchItems},
		{Endpoint: apidocs.Endpoint{Method: http.MethodPost, Path: "/items/bulk", Summary: "Create several items",
			Request: "NewItem[]", Response: "BulkResult", Success: http.StatusCreated, Errors: []int{http.StatusBadRequest}},
			Handler: h.BulkCreateItems},
		{Endpoint: apidocs.Endpoint{Method: http.MethodPost, Path: "/items/clear", Summary: "Remove all items", Response: "Message"},
			Handler: h.ClearItems},
		{Endpoint: apidocs.Endpoint{Method: http.MethodPut, Path: "/items/update", Summary: "Rename an item",
			Request: "ItemUpdate", Response: "Item", Errors: []int{http.StatusBadRequest, http.StatusNotFound}},
			Handler: h.UpdateItem},
		{Endpoint: apidocs.Endpoint{Method: http.MethodGet, Path: "/items/:id", Summary: "Get an item by id",
			Response: "Item", Errors: []int{http.StatusNotFound}},
			Handler: h.GetItem},
		{Endpoint: apidocs.Endpoint{Method: http.MethodGet, Path: "/events", Summary: "Stream collection changes",
			Errors: []int{http.StatusBadRequest}},
			Handler: h.Events},
		{Endpoint: apidocs.Endpoint{Method: http.MethodGet, Path: "/health", Summary: "Liveness check"},
			Handler: h.Health},
	}
}

// ValidateOrder rejects a table in which a parametric route is declared
// before a literal route it would capture, whatever the methods.
func ValidateOrder(routes []Route) error {
	for i, param := range routes {
		if !isParametric(param.Path) {
			continue
		}
		for _, literal := range routes[i+1:] {
			if isParametric(literal.Path) {
				continue
			}
			if matches(param.Path, literal.Path) {
				return fmt.Errorf("route %s %s must be declared before %s %s",
					literal.Method, literal.Path, param.Method, param.Path)
			}
		}
	}
	return nil
}

func isParametric(path string) bool {
	return strings.Contains(path, "/:") || strings.Contains(path, "/*")
}

// matches reports whether pattern would match the literal path.
func matches(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ls := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range ps {
		if strings.HasPrefix(seg, "*") {
			return true
		}
		if i >= len(ls) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if ls[i] == "" {
				return false
			}
			continue
		}
		if seg != ls[i] {
			return false
		}
	}
	return len(ps) == len(ls)
}

func endpoints(routes []Route) []apidocs.Endpoint {
	out := make([]apidocs.Endpoint, 0, len(routes))
	for _, r := range routes {
		out = append(out, r.Endpoint)
	}
	return out
}
