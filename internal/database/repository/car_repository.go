package repository

import (
	"context"
	"errors"
	"iter"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrCarNotFound is returned when no car has the requested id.
	ErrCarNotFound = errors.New("car not found")

	// ErrCarExists is returned when a car with the same id is already stored.
	ErrCarExists = errors.New("car already exists")

	// ErrStoreUnavailable wraps every failure coming from the underlying store.
	ErrStoreUnavailable = errors.New("car store unavailable")
)

// CarRepository contains the methods any store implementation needs to implement to interact with car data
type CarRepository interface {
	// FindCars lazily yields, in store order, every car matching filter.
	// The store is not read until the sequence is ranged over.
	FindCars(ctx context.Context, filter *models.CarFilter) iter.Seq2[models.CarModel, error]
	Save(ctx context.Context, car *models.CarModel) (*models.CarModel, error)
	SaveMany(ctx context.Context, cars []models.CarModel) ([]models.CarModel, error)
	GetCarFromId(ctx context.Context, id primitive.ObjectID) (*models.CarModel, error)
	Close(ctx context.Context) error
}

func assignId(car *models.CarModel) {
	if car.Id.IsZero() {
		car.Id = primitive.NewObjectID()
	}
}
