package repository

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCarRepository is an in-process car store. Cars are kept in insertion order.
type MemoryCarRepository struct {
	mu   sync.RWMutex
	cars []models.CarModel
}

func NewMemoryCarRepository(cars ...models.CarModel) *MemoryCarRepository {
	repo := &MemoryCarRepository{}
	for i := range cars {
		assignId(&cars[i])
		repo.cars = append(repo.cars, cars[i])
	}
	return repo
}

func (repo *MemoryCarRepository) FindCars(ctx context.Context, filter *models.CarFilter) iter.Seq2[models.CarModel, error] {
	return func(yield func(models.CarModel, error) bool) {
		repo.mu.RLock()
		snapshot := make([]models.CarModel, len(repo.cars))
		copy(snapshot, repo.cars)
		repo.mu.RUnlock()

		for i := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(models.CarModel{}, err)
				return
			}
			if !filter.Matches(&snapshot[i]) {
				continue
			}
			if !yield(snapshot[i], nil) {
				return
			}
		}
	}
}

func (repo *MemoryCarRepository) Save(ctx context.Context, car *models.CarModel) (*models.CarModel, error) {
	saved, err := repo.SaveMany(ctx, []models.CarModel{*car})
	if err != nil {
		return nil, err
	}
	*car = saved[0]
	return car, nil
}

// SaveMany inserts all the cars or none of them.
func (repo *MemoryCarRepository) SaveMany(ctx context.Context, cars []models.CarModel) ([]models.CarModel, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	seen := make(map[primitive.ObjectID]struct{}, len(repo.cars)+len(cars))
	for i := range repo.cars {
		seen[repo.cars[i].Id] = struct{}{}
	}
	for i := range cars {
		assignId(&cars[i])
		if _, ok := seen[cars[i].Id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrCarExists, cars[i].Id.Hex())
		}
		seen[cars[i].Id] = struct{}{}
	}

	repo.cars = append(repo.cars, cars...)
	return cars, nil
}

func (repo *MemoryCarRepository) GetCarFromId(ctx context.Context, id primitive.ObjectID) (*models.CarModel, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for i := range repo.cars {
		if repo.cars[i].Id == id {
			car := repo.cars[i]
			return &car, nil
		}
	}
	return nil, ErrCarNotFound
}

func (repo *MemoryCarRepository) Close(ctx context.Context) error {
	return nil
}
