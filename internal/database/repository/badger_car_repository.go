package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/hytech-racing/car-search-webserver/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const carKeyPrefix = "car:"

// BadgerCarRepository keeps cars as JSON values in an embedded Badger database.
// Keys are the hex object id, so iteration order follows insertion order.
type BadgerCarRepository struct {
	db *badger.DB
}

func NewBadgerCarRepository(path string) (*BadgerCarRepository, error) {
	opts := badger.DefaultOptions(filepath.Clean(path))
	opts.Logger = nil
	opts = opts.WithValueLogFileSize(1 << 20)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open badger store at %s: %w", path, err)
	}
	return &BadgerCarRepository{db: db}, nil
}

func carKey(id primitive.ObjectID) []byte {
	return []byte(carKeyPrefix + id.Hex())
}

func (repo *BadgerCarRepository) FindCars(ctx context.Context, filter *models.CarFilter) iter.Seq2[models.CarModel, error] {
	return func(yield func(models.CarModel, error) bool) {
		stopped := false
		err := repo.db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			prefix := []byte(carKeyPrefix)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				var car models.CarModel
				err := it.Item().Value(func(v []byte) error {
					return json.Unmarshal(v, &car)
				})
				if err != nil {
					return fmt.Errorf("could not decode car %s: %w", it.Item().Key(), err)
				}

				if !filter.Matches(&car) {
					continue
				}

				if !yield(car, nil) {
					stopped = true
					return nil
				}
			}
			return nil
		})
		if err != nil && !stopped {
			yield(models.CarModel{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
		}
	}
}

func (repo *BadgerCarRepository) Save(ctx context.Context, car *models.CarModel) (*models.CarModel, error) {
	saved, err := repo.SaveMany(ctx, []models.CarModel{*car})
	if err != nil {
		return nil, err
	}
	*car = saved[0]
	return car, nil
}

// insertCar writes car under its key, refusing to replace a stored car.
func insertCar(txn *badger.Txn, car *models.CarModel) error {
	key := carKey(car.Id)
	_, err := txn.Get(key)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrCarExists, car.Id.Hex())
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	data, err := json.Marshal(car)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func (repo *BadgerCarRepository) SaveMany(ctx context.Context, cars []models.CarModel) ([]models.CarModel, error) {
	err := repo.db.Update(func(txn *badger.Txn) error {
		for i := range cars {
			assignId(&cars[i])
			if err := insertCar(txn, &cars[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrCarExists) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not save %d cars: %w", ErrStoreUnavailable, len(cars), err)
	}
	return cars, nil
}

func (repo *BadgerCarRepository) GetCarFromId(ctx context.Context, id primitive.ObjectID) (*models.CarModel, error) {
	var out models.CarModel
	err := repo.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(carKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return &out, nil
}

func (repo *BadgerCarRepository) Close(ctx context.Context) error {
	return repo.db.Close()
}
