package database

import (
	"context"
	"fmt"

	"github.com/hytech-racing/car-search-webserver/internal/config"
	"github.com/hytech-racing/car-search-webserver/internal/database/repository"
	"github.com/hytech-racing/car-search-webserver/internal/database/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// A DatabaseClient opens the car store selected by the configuration and
// hands out the use cases built on top of it.
// Whoever creates a DatabaseClient is responsible for calling Disconnect()
// to gracefully close the store.
type DatabaseClient struct {
	carRepository repository.CarRepository
}

func NewDatabaseClient(ctx context.Context, cfg config.StoreConfig) (*DatabaseClient, error) {
	var (
		carRepository repository.CarRepository
		err           error
	)

	switch cfg.Driver {
	case config.StoreDriverMongo:
		carRepository, err = newMongoCarRepository(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StoreDriverBadger:
		carRepository, err = repository.NewBadgerCarRepository(cfg.BadgerPath)
	case config.StoreDriverMemory:
		carRepository = repository.NewMemoryCarRepository()
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return NewDatabaseClientFromRepository(carRepository), nil
}

// NewDatabaseClientFromRepository wraps an already opened car store.
func NewDatabaseClientFromRepository(carRepository repository.CarRepository) *DatabaseClient {
	return &DatabaseClient{carRepository: carRepository}
}

func newMongoCarRepository(ctx context.Context, uri string, databaseName string) (*repository.MongoCarRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	carRepository, err := repository.NewMongoCarRepository(client, client.Database(databaseName))
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("could not create carRepository: %w", err)
	}

	return carRepository, nil
}

func (client *DatabaseClient) CarRepository() repository.CarRepository {
	return client.carRepository
}

func (client *DatabaseClient) CarUseCase() *usecase.CarUseCase {
	return usecase.NewCarUseCase(client.carRepository)
}

// CarSearchUseCase builds the search and export use case over the store.
func (client *DatabaseClient) CarSearchUseCase(logger *zap.Logger, opts ...usecase.CarSearchOption) *usecase.CarSearchUseCase {
	return usecase.NewCarSearchUseCase(client.carRepository, logger, opts...)
}

func (client *DatabaseClient) Disconnect(ctx context.Context) error {
	if err := client.carRepository.Close(ctx); err != nil {
		return fmt.Errorf("failed to close car store: %w", err)
	}
	return nil
}
