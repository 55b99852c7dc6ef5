package validators

import "go.mongodb.org/mongo-driver/bson"

var BerthValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"max_length",
			"max_depth",
			"max_beam",
			"max_displacement",
			"cargo_category",
			"booked_periods",
			"version",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"max_length":       bson.M{"bsonType": "double", "exclusiveMinimum": true, "minimum": 0},
			"max_depth":        bson.M{"bsonType": "double", "exclusiveMinimum": true, "minimum": 0},
			"max_beam":         bson.M{"bsonType": "double", "exclusiveMinimum": true, "minimum": 0},
			"max_displacement": bson.M{"bsonType": "double", "exclusiveMinimum": true, "minimum": 0},

			"cargo_category": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			// vessel number -> reserved window
			"booked_periods": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "object",
					"required": []string{"start", "end"},
					"properties": bson.M{
						"start": bson.M{"bsonType": "date"},
						"end":   bson.M{"bsonType": "date"},
					},
				},
			},

			"version": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
