package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hytech-racing/car-search-webserver/internal/config"
	"github.com/hytech-racing/car-search-webserver/internal/database/repository"
	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseClient_Drivers(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		client, err := NewDatabaseClient(ctx, config.StoreConfig{Driver: config.StoreDriverMemory})
		require.NoError(t, err)
		defer client.Disconnect(ctx)

		assert.IsType(t, &repository.MemoryCarRepository{}, client.CarRepository())
	})

	t.Run("badger", func(t *testing.T) {
		client, err := NewDatabaseClient(ctx, config.StoreConfig{
			Driver:     config.StoreDriverBadger,
			BadgerPath: filepath.Join(t.TempDir(), "badger"),
		})
		require.NoError(t, err)
		defer client.Disconnect(ctx)

		created, err := client.CarUseCase().CreateCar(ctx, models.CarModel{Length: 4.2, Weight: 1100, Velocity: 90, Colour: "Silver"})
		require.NoError(t, err)

		found, err := client.CarUseCase().GetCarById(ctx, created.Id.Hex())
		require.NoError(t, err)
		assert.Equal(t, *created, *found)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDatabaseClient(ctx, config.StoreConfig{Driver: "sqlite"})
		assert.Error(t, err)
	})
}
