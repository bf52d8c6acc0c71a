package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

var ErrTicketNotFound = errors.New("ticket not found")

func CreateTicket(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	number, err := NextSequence(ctx, "tickets")
	if err != nil {
		return nil, err
	}

	ticket.ID = bson.NewObjectID()
	ticket.Number = number
	if ticket.Status == "" {
		ticket.Status = models.TicketStatusPending
	}
	ticket.SetTimestamps()

	collection := GetCollection("tickets")
	if _, err := collection.InsertOne(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to insert ticket: %w", err)
	}
	return ticket, nil
}

func GetAllTickets(ctx context.Context, status string) ([]*models.Ticket, error) {
	collection := GetCollection("tickets")

	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}

	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func GetTicketByNumber(ctx context.Context, number int64) (*models.Ticket, error) {
	collection := GetCollection("tickets")

	var ticket models.Ticket
	err := collection.FindOne(ctx, bson.D{{Key: "number", Value: number}}).Decode(&ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func updateTicketField(ctx context.Context, number int64, field string, value interface{}) (*models.Ticket, error) {
	collection := GetCollection("tickets")

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Ticket
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "number", Value: number}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: field, Value: value},
			{Key: "updated_at", Value: time.Now()},
		}}},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func UpdateTicketStatus(ctx context.Context, number int64, status string) (*models.Ticket, error) {
	return updateTicketField(ctx, number, "status", status)
}

func UpdateTicketNotes(ctx context.Context, number int64, notes string) (*models.Ticket, error) {
	return updateTicketField(ctx, number, "notes", notes)
}

func DeleteTicket(ctx context.Context, number int64) error {
	collection := GetCollection("tickets")

	result, err := collection.DeleteOne(ctx, bson.D{{Key: "number", Value: number}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrTicketNotFound
	}
	return nil
}
