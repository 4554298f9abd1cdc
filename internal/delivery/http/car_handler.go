package http

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hytech-racing/car-search-webserver/internal/database"
	"github.com/hytech-racing/car-search-webserver/internal/database/usecase"
	"github.com/hytech-racing/car-search-webserver/internal/models"
)

const (
	ContentSha256Header    = "X-Content-SHA256"
	ExportArchiveKeyHeader = "X-Export-Archive-Key"
)

type carHandler struct {
	dbClient      *database.DatabaseClient
	searchUseCase *usecase.CarSearchUseCase
}

func NewCarHandler(
	r chi.Router,
	dbClient *database.DatabaseClient,
	searchUseCase *usecase.CarSearchUseCase,
) {
	handler := &carHandler{
		dbClient:      dbClient,
		searchUseCase: searchUseCase,
	}

	r.Route("/cars", func(r chi.Router) {
		r.Get("/search", HandlerFunc(handler.SearchCars).ServeHTTP)
		r.Get("/export", HandlerFunc(handler.ExportCars).ServeHTTP)
		r.Post("/", HandlerFunc(handler.CreateCar).ServeHTTP)
		r.Post("/batch", HandlerFunc(handler.CreateCars).ServeHTTP)
		r.Get("/{id}", HandlerFunc(handler.GetCarById).ServeHTTP)
	})
}

// GET /cars/search; params -> (length, weight, velocity, colour), all optional
func (h *carHandler) SearchCars(w http.ResponseWriter, r *http.Request) *HandlerError {
	criteria, err := bindSearchCriteria(r.URL.Query())
	if err != nil {
		return NewHandlerError(err.Error(), http.StatusBadRequest)
	}

	cars, err := h.searchUseCase.FindCars(r.Context(), criteria)
	if err != nil {
		return NewUseCaseError(err)
	}

	data := make(map[string]interface{})
	data["data"] = cars
	data["message"] = fmt.Sprintf("found %d cars", len(cars))
	render.JSON(w, r, data)
	return nil
}

// GET /cars/export; same params as search, responds with the matching cars as an XML file
func (h *carHandler) ExportCars(w http.ResponseWriter, r *http.Request) *HandlerError {
	criteria, err := bindSearchCriteria(r.URL.Query())
	if err != nil {
		return NewHandlerError(err.Error(), http.StatusBadRequest)
	}

	result, err := h.searchUseCase.Export(r.Context(), criteria)
	if err != nil {
		return NewUseCaseError(err)
	}

	w.Header().Set("Content-Type", result.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.Header().Set(ContentSha256Header, result.Checksum)
	if result.ArchiveKey != "" {
		w.Header().Set(ExportArchiveKeyHeader, result.ArchiveKey)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Content)
	return nil
}

// POST /cars; body -> one car as JSON
func (h *carHandler) CreateCar(w http.ResponseWriter, r *http.Request) *HandlerError {
	var car models.CarModel
	if err := render.DecodeJSON(r.Body, &car); err != nil {
		return NewHandlerError("invalid car body: "+err.Error(), http.StatusBadRequest)
	}

	created, err := h.dbClient.CarUseCase().CreateCar(r.Context(), car)
	if err != nil {
		return NewUseCaseError(err)
	}

	data := make(map[string]interface{})
	data["data"] = created
	data["message"] = "created car"
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, data)
	return nil
}

// POST /cars/batch; body -> JSON array of cars, stored in order
func (h *carHandler) CreateCars(w http.ResponseWriter, r *http.Request) *HandlerError {
	var cars []models.CarModel
	if err := render.DecodeJSON(r.Body, &cars); err != nil {
		return NewHandlerError("invalid cars body: "+err.Error(), http.StatusBadRequest)
	}
	if len(cars) == 0 {
		return NewHandlerError("must pass in at least one car", http.StatusBadRequest)
	}

	created, err := h.dbClient.CarUseCase().CreateCars(r.Context(), cars)
	if err != nil {
		return NewUseCaseError(err)
	}

	data := make(map[string]interface{})
	data["data"] = created
	data["message"] = fmt.Sprintf("created %d cars", len(created))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, data)
	return nil
}

func (h *carHandler) GetCarById(w http.ResponseWriter, r *http.Request) *HandlerError {
	id := chi.URLParam(r, "id")
	if id == "" {
		return NewHandlerError("invalid request, must pass in car id", http.StatusBadRequest)
	}

	car, err := h.dbClient.CarUseCase().GetCarById(r.Context(), id)
	if err != nil {
		return NewUseCaseError(err)
	}

	data := make(map[string]interface{})
	data["data"] = car
	data["message"] = "received car"
	render.JSON(w, r, data)
	return nil
}
