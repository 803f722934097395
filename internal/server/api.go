package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrProductNotFound), errors.Is(err, shared.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidArgument), errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, shared.ErrDatabaseUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q must be a positive integer", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

// ProductHandler serves CRUD endpoints for products.
type ProductHandler struct {
	products models.ProductRepository
}

// NewProductHandler creates a [ProductHandler] backed by products.
func NewProductHandler(products models.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// Routes returns the product endpoints.
func (h *ProductHandler) Routes() []string {
	return []string{
		"GET /products",
		"POST /products",
		"GET /products/{id}",
		"PUT /products/{id}",
		"DELETE /products/{id}",
	}
}

// ServeHTTP dispatches on method and the optional {id} wildcard.
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w)
		case http.MethodPost:
			h.create(w, r)
		}
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, id)
	}
}

func (h *ProductHandler) list(w http.ResponseWriter) {
	products, err := h.products.GetAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) find(id int64) (*models.Product, error) {
	product, err := h.products.Get(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: id %d", shared.ErrProductNotFound, id)
	}
	return product, nil
}

func (h *ProductHandler) get(w http.ResponseWriter, id int64) {
	product, err := h.find(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeBody(w, r, &product); err != nil {
		writeError(w, err)
		return
	}
	product.ID = 0

	added, err := h.products.Add(&product)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var product models.Product
	if err := decodeBody(w, r, &product); err != nil {
		writeError(w, err)
		return
	}
	product.ID = id

	updated, err := h.products.Update(&product)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, fmt.Errorf("%w: id %d", shared.ErrProductNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) delete(w http.ResponseWriter, id int64) {
	product, err := h.find(id)
	if err != nil {
		writeError(w, err)
		return
	}

	deleted, err := h.products.Delete(product)
	if err != nil {
		writeError(w, err)
		return
	}
	if deleted == nil {
		writeError(w, fmt.Errorf("%w: id %d", shared.ErrProductNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

// ItemHandler serves CRUD endpoints for grocery list items and the joined list view.
type ItemHandler struct {
	items    models.GroceryListItemRepository
	products models.ProductRepository
}

// NewItemHandler creates an [ItemHandler]. products is used to join list views.
func NewItemHandler(items models.GroceryListItemRepository, products models.ProductRepository) *ItemHandler {
	return &ItemHandler{items: items, products: products}
}

// Routes returns the item endpoints and the grocery list view.
func (h *ItemHandler) Routes() []string {
	return []string{
		"GET /items",
		"POST /items",
		"GET /items/{id}",
		"PUT /items/{id}",
		"DELETE /items/{id}",
		"GET /lists/{id}",
	}
}

// ServeHTTP dispatches on the matched pattern, method and the optional {id} wildcard.
func (h *ItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		}
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.Pattern == "GET /lists/{id}" {
		h.groceryList(w, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, id)
	}
}

func (h *ItemHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items []*models.GroceryListItem
		err   error
	)

	if raw := r.URL.Query().Get("list"); raw != "" {
		listID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			writeError(w, fmt.Errorf("%w: list %q", shared.ErrInvalidArgument, raw))
			return
		}
		items, err = h.items.GetAllForList(listID)
	} else {
		items, err = h.items.GetAll()
	}

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) find(id int64) (*models.GroceryListItem, error) {
	item, err := h.items.Get(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: id %d", shared.ErrItemNotFound, id)
	}
	return item, nil
}

func (h *ItemHandler) get(w http.ResponseWriter, id int64) {
	item, err := h.find(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) create(w http.ResponseWriter, r *http.Request) {
	var item models.GroceryListItem
	if err := decodeBody(w, r, &item); err != nil {
		writeError(w, err)
		return
	}
	item.ID = 0

	added, err := h.items.Add(&item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *ItemHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var item models.GroceryListItem
	if err := decodeBody(w, r, &item); err != nil {
		writeError(w, err)
		return
	}
	item.ID = id

	updated, err := h.items.Update(&item)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, fmt.Errorf("%w: id %d", shared.ErrItemNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) delete(w http.ResponseWriter, id int64) {
	item, err := h.find(id)
	if err != nil {
		writeError(w, err)
		return
	}

	deleted, err := h.items.Delete(item)
	if err != nil {
		writeError(w, err)
		return
	}
	if deleted == nil {
		writeError(w, fmt.Errorf("%w: id %d", shared.ErrItemNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (h *ItemHandler) groceryList(w http.ResponseWriter, id int64) {
	items, err := h.items.GetAllForList(id)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.products.GetAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewGroceryList(id, items, products))
}

// NewAPI builds the router for the grocery HTTP API.
func NewAPI(products models.ProductRepository, items models.GroceryListItemRepository, middleware ...Middleware) *BasicRouter {
	router := NewBasicRouter()
	router.Use(middleware...)

	router.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	router.Handler(NewProductHandler(products))
	router.Handler(NewItemHandler(items, products))
	return router
}
