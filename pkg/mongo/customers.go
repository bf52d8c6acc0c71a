package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailExists      = errors.New("email already exists")
)

func CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	collection := GetCollection("customers")

	customer.ID = bson.NewObjectID()
	customer.SetTimestamps()

	_, err := collection.InsertOne(ctx, customer)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	collection := GetCollection("customers")

	var customer models.Customer
	err := collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func GetCustomerByID(ctx context.Context, id bson.ObjectID) (*models.Customer, error) {
	collection := GetCollection("customers")

	var customer models.Customer
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomerPassword stores a new bcrypt hash for the account.
func UpdateCustomerPassword(ctx context.Context, id bson.ObjectID, hashed string) error {
	collection := GetCollection("customers")

	result, err := collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password", Value: hashed},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
