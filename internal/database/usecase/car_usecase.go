package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hytech-racing/car-search-webserver/internal/database/repository"
	"github.com/hytech-racing/car-search-webserver/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidCar = errors.New("invalid car")
	ErrInvalidId  = errors.New("invalid id")
)

// CarUseCase covers ingesting cars into the catalog and reading them back by id.
type CarUseCase struct {
	carRepo repository.CarRepository
}

func NewCarUseCase(carRepo repository.CarRepository) *CarUseCase {
	return &CarUseCase{
		carRepo: carRepo,
	}
}

func (uc *CarUseCase) CreateCar(ctx context.Context, car models.CarModel) (*models.CarModel, error) {
	if err := validateCar(&car); err != nil {
		return nil, err
	}
	return uc.carRepo.Save(ctx, &car)
}

// CreateCars validates every car before inserting any of them.
func (uc *CarUseCase) CreateCars(ctx context.Context, cars []models.CarModel) ([]models.CarModel, error) {
	for i := range cars {
		if err := validateCar(&cars[i]); err != nil {
			return nil, fmt.Errorf("car %d: %w", i, err)
		}
	}
	return uc.carRepo.SaveMany(ctx, cars)
}

func (uc *CarUseCase) GetCarById(ctx context.Context, idStr string) (*models.CarModel, error) {
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidId, idStr)
	}
	return uc.carRepo.GetCarFromId(ctx, id)
}

func validateCar(car *models.CarModel) error {
	if !car.Id.IsZero() {
		return fmt.Errorf("%w: id is assigned by the store", ErrInvalidCar)
	}
	if strings.TrimSpace(car.Colour) == "" {
		return fmt.Errorf("%w: colour must not be empty", ErrInvalidCar)
	}
	for name, value := range map[string]float64{"length": car.Length, "weight": car.Weight, "velocity": car.Velocity} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidCar, name)
		}
	}
	return nil
}
