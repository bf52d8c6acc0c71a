package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

func testFAQs() []models.FAQ {
	return []models.FAQ{
		{Question: "¿Cuánto demora el envío?", Answer: "Los envíos demoran 3 a 5 días hábiles.", Keywords: "envio despacho demora"},
		{Question: "¿Qué medios de pago aceptan?", Answer: "Aceptamos Webpay y transferencia.", Keywords: "pago webpay tarjeta"},
	}
}

func testEngine() (*Engine, *[]models.ChatInteraction) {
	recorded := &[]models.ChatInteraction{}
	engine := &Engine{
		FAQs: func(context.Context) ([]models.FAQ, error) { return testFAQs(), nil },
		Order: func(_ context.Context, number int64) (*models.Order, error) {
			if number != 42 {
				return nil, errors.New("order not found")
			}
			return &models.Order{
				Number: 42,
				Status: models.OrderStatusPreparing,
				Items:  []models.OrderItem{{Name: "Café", Quantity: 2, UnitPrice: 4990}},
				Totals: models.OrderTotals{GrandTotal: 15866},
			}, nil
		},
		CreateTicket: func(_ context.Context, ticket *models.Ticket) (*models.Ticket, error) {
			ticket.Number = 7
			return ticket, nil
		},
		Record: func(_ context.Context, interaction *models.ChatInteraction) error {
			*recorded = append(*recorded, *interaction)
			return nil
		},
	}
	return engine, recorded
}

func TestReplyGreeting(t *testing.T) {
	engine, _ := testEngine()
	reply := engine.Reply(context.Background(), "s1", "¡Hola!")
	assert.Equal(t, IntentGreeting, reply.Intent)
}

func TestReplyFAQMatch(t *testing.T) {
	engine, recorded := testEngine()
	reply := engine.Reply(context.Background(), "s1", "¿cuánto demora el despacho?")

	assert.Equal(t, IntentFAQ, reply.Intent)
	assert.Contains(t, reply.Response, "3 a 5 días")
	require.Len(t, *recorded, 1)
	assert.Equal(t, IntentFAQ, (*recorded)[0].Intent)
}

func TestReplyFAQNoMatchFallsBack(t *testing.T) {
	engine, _ := testEngine()
	reply := engine.Reply(context.Background(), "s1", "xyzzy plugh")

	assert.Equal(t, IntentFallback, reply.Intent)
	assert.Contains(t, reply.Response, "reformular")
}

func TestReplyOrderStatus(t *testing.T) {
	engine, _ := testEngine()
	reply := engine.Reply(context.Background(), "s1", "estado de mi pedido 42")

	assert.Equal(t, IntentOrderStatus, reply.Intent)
	assert.Contains(t, reply.Response, "Pedido #42")
	assert.Contains(t, reply.Response, "EN PREPARACIÓN")
	assert.Contains(t, reply.Response, "Café")
}

func TestReplyOrderStatusUnknownOrder(t *testing.T) {
	engine, _ := testEngine()
	reply := engine.Reply(context.Background(), "s1", "mi pedido 999")

	assert.Equal(t, IntentOrderStatus, reply.Intent)
	assert.Contains(t, reply.Response, "No encontré el pedido #999")
}

func TestReplyOrderStatusWithoutNumberAsks(t *testing.T) {
	engine, _ := testEngine()
	reply := engine.Reply(context.Background(), "s1", "quiero saber de mi pedido")

	assert.Equal(t, IntentOrderStatus, reply.Intent)
	assert.Contains(t, reply.Response, "número")
}

func TestReplyEscalationCreatesTicket(t *testing.T) {
	engine, _ := testEngine()
	reply := engine.Reply(context.Background(), "s1", "quiero hablar con un agente")

	assert.Equal(t, IntentEscalate, reply.Intent)
	assert.Contains(t, reply.Response, "ticket #7")
}

func TestReplyFAQBackendFailure(t *testing.T) {
	engine, _ := testEngine()
	engine.FAQs = func(context.Context) ([]models.FAQ, error) { return nil, errors.New("db down") }

	reply := engine.Reply(context.Background(), "s1", "medios de pago")
	assert.Equal(t, IntentFallback, reply.Intent)
	assert.Contains(t, reply.Response, "problema técnico")
}
