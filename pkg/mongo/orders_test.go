package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCustomerOrdersFilterMatchesEmailOnlyOrders(t *testing.T) {
	id := bson.NewObjectID()
	filter := customerOrdersFilter(id, "ana@example.com")

	require.Len(t, filter, 1)
	require.Equal(t, "$or", filter[0].Key)
	owners, ok := filter[0].Value.(bson.A)
	require.True(t, ok)

	assert.Contains(t, owners, bson.D{{Key: "customer_id", Value: id}})
	// Guest checkouts store only customer_email; the email clause is what
	// lets those orders show up in the account's history.
	assert.Contains(t, owners, bson.D{{Key: "customer_email", Value: "ana@example.com"}})
}

func TestCustomerOrdersFilterSkipsEmptyClauses(t *testing.T) {
	filter := customerOrdersFilter(bson.NilObjectID, "ana@example.com")
	require.Equal(t, "$or", filter[0].Key)
	assert.Equal(t, bson.A{bson.D{{Key: "customer_email", Value: "ana@example.com"}}}, filter[0].Value)

	// Neither clause available: match nothing rather than everything.
	filter = customerOrdersFilter(bson.NilObjectID, "")
	assert.Equal(t, bson.D{{Key: "customer_id", Value: bson.NilObjectID}}, filter)
}
