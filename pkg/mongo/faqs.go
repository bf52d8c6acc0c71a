package mongo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

func GetActiveFAQs(ctx context.Context) ([]models.FAQ, error) {
	collection := GetCollection("faqs")

	cursor, err := collection.Find(ctx,
		bson.D{{Key: "active", Value: true}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(40),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var faqs []models.FAQ
	if err := cursor.All(ctx, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

var defaultFAQs = []models.FAQ{
	{
		Category: "envios",
		Question: "¿Cuáles son los tiempos de entrega?",
		Answer:   "Los pedidos se despachan en 2 a 5 días hábiles dentro de la Región Metropolitana y 3 a 7 días hábiles en regiones.",
		Keywords: "envio despacho entrega demora dias tiempo",
	},
	{
		Category: "pagos",
		Question: "¿Qué medios de pago aceptan?",
		Answer:   "Aceptamos tarjetas de crédito y débito a través de Webpay, y transferencia bancaria para compras coordinadas.",
		Keywords: "pago pagar tarjeta credito debito webpay transferencia",
	},
	{
		Category: "retiros",
		Question: "¿Puedo retirar mi compra en tienda?",
		Answer:   "Sí, puedes elegir retiro en tienda. Te avisaremos cuando tu pedido esté listo para retiro.",
		Keywords: "retiro retirar tienda local presencial",
	},
	{
		Category: "cambios",
		Question: "¿Cuál es la política de cambios y devoluciones?",
		Answer:   "Tienes 10 días desde la recepción para solicitar cambio o devolución, con el producto sin uso y en su empaque original.",
		Keywords: "cambio devolucion devolver garantia reembolso",
	},
	{
		Category: "horarios",
		Question: "¿Cuál es el horario de atención?",
		Answer:   "Atendemos de lunes a viernes de 10:00 a 19:00 y sábados de 10:00 a 14:00.",
		Keywords: "horario atencion abierto hora",
	},
}

// SeedDefaultFAQs inserts the scripted FAQ set on first boot so the chat
// widget answers something useful out of the box.
func SeedDefaultFAQs() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := GetCollection("faqs")

	count, err := collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Printf("Warning: could not check FAQ collection: %v", err)
		return
	}
	if count > 0 {
		return
	}

	docs := make([]interface{}, len(defaultFAQs))
	for i, faq := range defaultFAQs {
		faq.ID = bson.NewObjectID()
		faq.Active = true
		faq.CreatedAt = time.Now()
		docs[i] = faq
	}
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		log.Printf("Warning: could not seed FAQs: %v", err)
	}
}

// RecordChatInteraction stores a widget exchange; failures are logged by
// the caller, a lost transcript row never fails the chat reply.
func RecordChatInteraction(ctx context.Context, interaction *models.ChatInteraction) error {
	collection := GetCollection("chat_interactions")

	interaction.ID = bson.NewObjectID()
	interaction.CreatedAt = time.Now()
	_, err := collection.InsertOne(ctx, interaction)
	return err
}
