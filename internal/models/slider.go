package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	SliderTypeImage = "image"
	SliderTypeVideo = "video"
)

type SliderItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MediaURL    string             `bson:"mediaUrl" json:"mediaUrl"`
	Type        string             `bson:"type" json:"type"`
	RedirectURL string             `bson:"redirectUrl,omitempty" json:"redirectUrl,omitempty"`
	Position    int                `bson:"position" json:"position"`
}
