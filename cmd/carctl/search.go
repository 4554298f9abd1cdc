package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/hytech-racing/car-search-webserver/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type criteriaFlags struct {
	length   float64
	weight   float64
	velocity float64
	colour   string
}

func (c *criteriaFlags) register(flags *pflag.FlagSet) {
	flags.Float64Var(&c.length, "length", 0, "only cars with exactly this length")
	flags.Float64Var(&c.weight, "weight", 0, "only cars with exactly this weight")
	flags.Float64Var(&c.velocity, "velocity", 0, "only cars with exactly this velocity")
	flags.StringVar(&c.colour, "colour", "", "only cars with this colour, any case")
}

// criteria only sets the fields whose flag was given on the command line.
func (c *criteriaFlags) criteria(flags *pflag.FlagSet) *models.CarSearchCriteria {
	criteria := &models.CarSearchCriteria{Colour: c.colour}
	if flags.Changed("length") {
		criteria.Length = &c.length
	}
	if flags.Changed("weight") {
		criteria.Weight = &c.weight
	}
	if flags.Changed("velocity") {
		criteria.Velocity = &c.velocity
	}
	return criteria
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	flags := &criteriaFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print the matching cars as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, dbClient, logger, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer dbClient.Disconnect(ctx)

			encoder := json.NewEncoder(cmd.OutOrStdout())
			searchUseCase := dbClient.CarSearchUseCase(logger)
			for car, err := range searchUseCase.SearchCars(ctx, flags.criteria(cmd.Flags())) {
				if err != nil {
					return err
				}
				if err := encoder.Encode(car); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newExportCmd(root *rootOptions) *cobra.Command {
	flags := &criteriaFlags{}
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matching cars to an XML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, dbClient, logger, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer dbClient.Disconnect(ctx)

			result, err := dbClient.CarSearchUseCase(logger).Export(ctx, flags.criteria(cmd.Flags()))
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
				return err
			}
			path := filepath.Join(outDir, utils.SafeFileName(result.FileName))
			if err := os.WriteFile(path, result.Content, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cars to %s (sha256 %s)\n", result.Count, path, result.Checksum)
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write the export file to")
	return cmd
}
