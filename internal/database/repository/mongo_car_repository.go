package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CarCollection string = "cars"

// MongoCarRepository conatins all the information needed to interact with a MongoDB implementation of the car store
type MongoCarRepository struct {
	dbClient   *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoCarRepository creates a new MongoCarRepository with a MongoDB client and database
func NewMongoCarRepository(dbClient *mongo.Client, database *mongo.Database) (*MongoCarRepository, error) {
	collection := database.Collection(CarCollection)
	if collection == nil {
		return nil, fmt.Errorf("could not get collection %s", CarCollection)
	}

	return &MongoCarRepository{
		dbClient:   dbClient,
		db:         database,
		collection: collection,
	}, nil
}

// FindCars streams the cars matching filter from a Mongo cursor, ordered by _id.
// The filter document is pushed down to Mongo and every decoded car is checked
// against the in-process predicates again, so the colour comparison follows the
// same folding rule whatever the server's regex engine does.
func (repo *MongoCarRepository) FindCars(ctx context.Context, filter *models.CarFilter) iter.Seq2[models.CarModel, error] {
	return func(yield func(models.CarModel, error) bool) {
		opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
		cursor, err := repo.collection.Find(ctx, filter.Document(), opts)
		if err != nil {
			yield(models.CarModel{}, fmt.Errorf("%w: could not find cars with filter %v: %w", ErrStoreUnavailable, filter.Document(), err))
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var car models.CarModel
			if err := cursor.Decode(&car); err != nil {
				yield(models.CarModel{}, fmt.Errorf("could not decode car: %w", err))
				return
			}

			if !filter.Matches(&car) {
				continue
			}

			if !yield(car, nil) {
				return
			}
		}

		if err := cursor.Err(); err != nil {
			yield(models.CarModel{}, fmt.Errorf("%w: cursor failed: %w", ErrStoreUnavailable, err))
		}
	}
}

// Save inserts a car into the collection
func (repo *MongoCarRepository) Save(ctx context.Context, car *models.CarModel) (*models.CarModel, error) {
	assignId(car)
	if _, err := repo.collection.InsertOne(ctx, car); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", ErrCarExists, car.Id.Hex())
		}
		return nil, fmt.Errorf("%w: could not insert car %v: %w", ErrStoreUnavailable, car, err)
	}

	return car, nil
}

// SaveMany inserts all the cars in one round trip, keeping their order
func (repo *MongoCarRepository) SaveMany(ctx context.Context, cars []models.CarModel) ([]models.CarModel, error) {
	if len(cars) == 0 {
		return []models.CarModel{}, nil
	}

	documents := make([]interface{}, len(cars))
	for i := range cars {
		assignId(&cars[i])
		documents[i] = cars[i]
	}

	opts := options.InsertMany().SetOrdered(true)
	if _, err := repo.collection.InsertMany(ctx, documents, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %w", ErrCarExists, err)
		}
		return nil, fmt.Errorf("%w: could not insert %d cars: %w", ErrStoreUnavailable, len(cars), err)
	}

	return cars, nil
}

// GetCarFromId gets a car document from its id
func (repo *MongoCarRepository) GetCarFromId(ctx context.Context, id primitive.ObjectID) (*models.CarModel, error) {
	filter := bson.M{"_id": id}
	result := repo.collection.FindOne(ctx, filter)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, result.Err())
	}

	var model models.CarModel
	if err := result.Decode(&model); err != nil {
		return nil, fmt.Errorf("could not decode result into model: %v", err)
	}

	return &model, nil
}

func (repo *MongoCarRepository) Close(ctx context.Context) error {
	if err := repo.dbClient.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB client: %w", err)
	}
	return nil
}
