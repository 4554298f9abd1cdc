package usecase

import (
	"context"
	"iter"

	"github.com/hytech-racing/car-search-webserver/internal/database/repository"
	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }

// seedCars returns the five car catalog used across the search tests.
func seedCars() []models.CarModel {
	return []models.CarModel{
		{Length: 5.0, Weight: 1500, Velocity: 120, Colour: "Red"},
		{Length: 4.5, Weight: 1200, Velocity: 100, Colour: "Blue"},
		{Length: 5.0, Weight: 1600, Velocity: 130, Colour: "Green"},
		{Length: 3.5, Weight: 1000, Velocity: 80, Colour: "Yellow"},
		{Length: 3.5, Weight: 1500, Velocity: 130, Colour: "Red"},
	}
}

func newSeededRepository() *repository.MemoryCarRepository {
	return repository.NewMemoryCarRepository(seedCars()...)
}

// MockCarRepository is a repository.CarRepository mock.
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) FindCars(ctx context.Context, filter *models.CarFilter) iter.Seq2[models.CarModel, error] {
	args := m.Called(ctx, filter)
	cars, _ := args.Get(0).([]models.CarModel)
	err := args.Error(1)
	return func(yield func(models.CarModel, error) bool) {
		for _, car := range cars {
			if !yield(car, nil) {
				return
			}
		}
		if err != nil {
			yield(models.CarModel{}, err)
		}
	}
}

func (m *MockCarRepository) Save(ctx context.Context, car *models.CarModel) (*models.CarModel, error) {
	args := m.Called(ctx, car)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarModel), args.Error(1)
}

func (m *MockCarRepository) SaveMany(ctx context.Context, cars []models.CarModel) ([]models.CarModel, error) {
	args := m.Called(ctx, cars)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CarModel), args.Error(1)
}

func (m *MockCarRepository) GetCarFromId(ctx context.Context, id primitive.ObjectID) (*models.CarModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CarModel), args.Error(1)
}

func (m *MockCarRepository) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
