package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Cars []seedCar `yaml:"cars"`
}

type seedCar struct {
	Length   float64 `yaml:"length"`
	Weight   float64 `yaml:"weight"`
	Velocity float64 `yaml:"velocity"`
	Colour   string  `yaml:"colour"`
}

// readSeedFile decodes a YAML document of the form
//
//	cars:
//	  - {length: 5.0, weight: 1500, velocity: 120, colour: Red}
func readSeedFile(r io.Reader) ([]models.CarModel, error) {
	var file seedFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("could not decode seed file: %w", err)
	}

	cars := make([]models.CarModel, len(file.Cars))
	for i, c := range file.Cars {
		cars[i] = models.CarModel{
			Length:   c.Length,
			Weight:   c.Weight,
			Velocity: c.Velocity,
			Colour:   c.Colour,
		}
	}
	return cars, nil
}

func newSeedCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Insert the cars listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cars, err := readSeedFile(f)
			if err != nil {
				return err
			}

			_, dbClient, _, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer dbClient.Disconnect(ctx)

			saved, err := dbClient.CarUseCase().CreateCars(ctx, cars)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d cars\n", len(saved))
			return nil
		},
	}
}
