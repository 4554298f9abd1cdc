package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CarModel is a single car record in the catalog.
type CarModel struct {
	Id       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Length   float64            `json:"length" bson:"length"`
	Weight   float64            `json:"weight" bson:"weight"`
	Velocity float64            `json:"velocity" bson:"velocity"`
	Colour   string             `json:"colour" bson:"colour"`
}
