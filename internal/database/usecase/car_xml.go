package usecase

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const fileNameTimestampLayout = "20060102150405"

type carXml struct {
	XMLName  xml.Name `xml:"Car"`
	Id       string   `xml:"id,attr,omitempty"`
	Length   float64  `xml:"Length"`
	Weight   float64  `xml:"Weight"`
	Velocity float64  `xml:"Velocity"`
	Colour   string   `xml:"Colour"`
}

type carListXml struct {
	XMLName xml.Name `xml:"ArrayOfCar"`
	Cars    []carXml `xml:"Car"`
}

// ExportToXml serializes cars into an XML document rooted at ArrayOfCar,
// one Car element per car, keeping the order of the input.
func ExportToXml(cars []models.CarModel) (string, error) {
	list := carListXml{Cars: make([]carXml, len(cars))}
	for i, car := range cars {
		list.Cars[i] = carXml{
			Length:   car.Length,
			Weight:   car.Weight,
			Velocity: car.Velocity,
			Colour:   car.Colour,
		}
		if !car.Id.IsZero() {
			list.Cars[i].Id = car.Id.Hex()
		}
	}

	out, err := xml.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not marshal %d cars to xml: %w", len(cars), err)
	}

	return xml.Header + string(out), nil
}

// ParseXml reads a document produced by ExportToXml back into cars.
func ParseXml(data []byte) ([]models.CarModel, error) {
	var list carListXml
	if err := xml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("could not parse car xml: %w", err)
	}

	cars := make([]models.CarModel, len(list.Cars))
	for i, c := range list.Cars {
		cars[i] = models.CarModel{
			Length:   c.Length,
			Weight:   c.Weight,
			Velocity: c.Velocity,
			Colour:   c.Colour,
		}
		if c.Id != "" {
			id, err := primitive.ObjectIDFromHex(c.Id)
			if err != nil {
				return nil, fmt.Errorf("car %d has an invalid id %q: %w", i, c.Id, err)
			}
			cars[i].Id = id
		}
	}

	return cars, nil
}

// ConstructFileName builds the export file name for criteria:
// cars_<timestamp>_<length>_<weight>_<velocity>_<colour>.xml
func ConstructFileName(criteria *models.CarSearchCriteria, at time.Time) string {
	if criteria == nil {
		criteria = &models.CarSearchCriteria{}
	}

	colourPart := "allColours"
	if criteria.Colour != "" {
		colourPart = criteria.Colour
	}

	parts := []string{
		"cars",
		at.Format(fileNameTimestampLayout),
		numberToken("length", criteria.Length),
		numberToken("weight", criteria.Weight),
		numberToken("velocity", criteria.Velocity),
		colourPart,
	}

	return strings.Join(parts, "_") + ".xml"
}

func numberToken(name string, value *float64) string {
	if value == nil {
		return "no" + name
	}
	return name + strconv.FormatFloat(*value, 'f', -1, 64)
}
