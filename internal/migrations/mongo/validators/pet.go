package validators

import "go.mongodb.org/mongo-driver/bson"

var PetValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner_id",
			"name",
			"species",
			"date_of_birth",
			"gender",
			"weight_kg",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"species": bson.M{
				"bsonType": "string",
				"enum": []string{
					"dog",
					"cat",
					"bird",
					"rabbit",
					"hamster",
					"fish",
					"reptile",
					"other",
				},
			},

			"date_of_birth": bson.M{
				"bsonType": "date",
			},

			"gender": bson.M{
				"bsonType": "string",
				"enum": []string{
					"male",
					"female",
					"unknown",
				},
			},

			"weight_kg": bson.M{
				"bsonType":         "double",
				"exclusiveMinimum": true,
				"minimum":          0,
				"maximum":          500,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
