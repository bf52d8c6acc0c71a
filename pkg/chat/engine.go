package chat

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
)

// Intents the engine can classify a message into.
const (
	IntentGreeting    = "saludo"
	IntentOrderStatus = "consultar_pedido"
	IntentEscalate    = "hablar_con_agente"
	IntentFAQ         = "buscar_faq"
	IntentFallback    = "fallback"
)

var orderNumberPattern = regexp.MustCompile(`\b\d{1,6}\b`)

var greetingWords = []string{"hola", "buenas", "buenos dias", "buenas tardes", "buenas noches", "saludos"}

var escalateWords = []string{"agente", "humano", "persona", "ejecutivo", "reclamo", "ticket"}

var orderWords = []string{"pedido", "orden", "compra", "envio", "seguimiento"}

var statusEmoji = map[string]string{
	models.OrderStatusCreated:   "📝",
	models.OrderStatusPreparing: "📦",
	models.OrderStatusReady:     "✅",
	models.OrderStatusDelivered: "🎉",
	models.OrderStatusCancelled: "❌",
}

var statusMessage = map[string]string{
	models.OrderStatusCreated:   "⏳ Tu pedido ha sido creado y está en proceso de validación de pago.",
	models.OrderStatusPreparing: "📦 ¡Tu pedido está siendo preparado! Pronto estará listo para que lo retires.",
	models.OrderStatusReady:     "✅ ¡Tu pedido está listo! Puedes pasar a retirarlo en nuestra tienda.",
	models.OrderStatusDelivered: "🎉 ¡Tu pedido ha sido entregado! Esperamos que lo disfrutes.",
	models.OrderStatusCancelled: "❌ Este pedido ha sido cancelado. Si tienes dudas, contacta a soporte.",
}

// Engine is the scripted chat widget backend: it classifies each message
// into an intent, answers from the FAQ table or the order catalog, and
// escalates to a support ticket on request. Dependencies are injected as
// functions so tests can run without Mongo.
type Engine struct {
	FAQs         func(ctx context.Context) ([]models.FAQ, error)
	Order        func(ctx context.Context, number int64) (*models.Order, error)
	CreateTicket func(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error)
	Record       func(ctx context.Context, interaction *models.ChatInteraction) error
}

// Reply answers one widget message. It never returns an error: technical
// failures become apologetic replies so the widget always has something
// to show.
func (e *Engine) Reply(ctx context.Context, senderID, message string) models.ChatReply {
	normalized := NormalizeText(message)

	var reply models.ChatReply
	switch {
	case containsAny(normalized, escalateWords):
		reply = e.escalate(ctx, senderID, message)
	case containsAny(normalized, orderWords):
		reply = e.orderStatus(ctx, message)
	case containsAny(normalized, greetingWords):
		reply = models.ChatReply{
			Response:   "¡Hola! Soy el asistente de la tienda. Puedo responder preguntas frecuentes, consultar el estado de tu pedido o conectarte con un agente.",
			Intent:     IntentGreeting,
			Confidence: 1,
		}
	default:
		reply = e.answerFAQ(ctx, normalized)
	}

	e.record(ctx, senderID, message, reply)
	return reply
}

// answerFAQ scores every active FAQ by normalized token overlap with the
// message and answers with the best match. One shared token is enough;
// the FAQ table is small and curated, so loose matching beats silence.
func (e *Engine) answerFAQ(ctx context.Context, normalized string) models.ChatReply {
	faqs, err := e.FAQs(ctx)
	if err != nil {
		logger.L.Warnf("chat: failed to load faqs: %v", err)
		return models.ChatReply{
			Response: "Lo siento, hay un problema técnico. Por favor intenta más tarde.",
			Intent:   IntentFallback,
		}
	}

	userTokens := TokenizeES(normalized)
	var best *models.FAQ
	maxScore := 0
	for i := range faqs {
		faq := &faqs[i]
		score := overlap(userTokens, TokenizeES(NormalizeText(faq.Question+" "+faq.Keywords)))
		if score > maxScore {
			maxScore = score
			best = faq
		}
	}

	if best == nil || maxScore < 1 {
		return models.ChatReply{
			Response: "No encontré información específica sobre eso. ¿Puedes reformular tu pregunta o prefieres hablar con un agente humano?",
			Intent:   IntentFallback,
		}
	}

	confidence := float64(maxScore) / float64(len(userTokens)+1)
	if confidence > 1 {
		confidence = 1
	}
	return models.ChatReply{Response: best.Answer, Intent: IntentFAQ, Confidence: confidence}
}

// orderStatus looks up the order number mentioned in the message and
// renders its status summary.
func (e *Engine) orderStatus(ctx context.Context, message string) models.ChatReply {
	match := orderNumberPattern.FindString(message)
	number, err := strconv.ParseInt(match, 10, 64)
	if match == "" || err != nil || number <= 0 {
		return models.ChatReply{
			Response: "¿Me indicas el número de tu pedido? Por ejemplo: \"estado del pedido 42\".",
			Intent:   IntentOrderStatus,
		}
	}

	order, err := e.Order(ctx, number)
	if err != nil {
		return models.ChatReply{
			Response: fmt.Sprintf("❌ No encontré el pedido #%d. Por favor verifica el número de pedido o contacta a soporte.", number),
			Intent:   IntentOrderStatus,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Estado de tu Pedido #%d\n\n", order.Number)
	fmt.Fprintf(&b, "Estado: %s %s\n", emojiFor(order.Status), strings.ToUpper(strings.ReplaceAll(order.Status, "_", " ")))
	fmt.Fprintf(&b, "Total: $%.0f\n", order.Totals.GrandTotal)
	fmt.Fprintf(&b, "Fecha de Pedido: %s\n", order.CreatedAt.Format("02/01/2006"))
	if len(order.Items) > 0 {
		b.WriteString("\nProductos:\n")
		for i, item := range order.Items {
			if i == 5 {
				b.WriteString("(y más productos)\n")
				break
			}
			fmt.Fprintf(&b, "%d. %s (x%d) - $%.0f\n", i+1, item.Name, item.Quantity, item.UnitPrice)
		}
	}
	fmt.Fprintf(&b, "\n%s", messageFor(order.Status))

	return models.ChatReply{Response: b.String(), Intent: IntentOrderStatus, Confidence: 1}
}

// escalate opens a support ticket carrying the last message and tells the
// user its number.
func (e *Engine) escalate(ctx context.Context, senderID, message string) models.ChatReply {
	conversation := RedactPII(fmt.Sprintf("[Chatbot] Solicitud de asistencia.\n\nSesión: %s\nÚltimo mensaje: %s", senderID, message))
	ticket, err := e.CreateTicket(ctx, &models.Ticket{
		Conversation: conversation,
		Status:       models.TicketStatusPending,
	})
	if err != nil {
		logger.L.Warnf("chat: failed to create ticket: %v", err)
		return models.ChatReply{
			Response: "Hubo un error al crear tu ticket. Intenta nuevamente.",
			Intent:   IntentEscalate,
		}
	}
	return models.ChatReply{
		Response:   fmt.Sprintf("✅ Tu ticket #%d ha sido creado. Un agente te contactará pronto.", ticket.Number),
		Intent:     IntentEscalate,
		Confidence: 1,
	}
}

func (e *Engine) record(ctx context.Context, senderID, message string, reply models.ChatReply) {
	if e.Record == nil {
		return
	}
	err := e.Record(ctx, &models.ChatInteraction{
		SenderID: senderID,
		Message:  RedactPII(message),
		Response: RedactPII(reply.Response),
		Intent:   reply.Intent,
	})
	if err != nil {
		logger.L.Warnf("chat: failed to record interaction: %v", err)
	}
}

func containsAny(normalized string, words []string) bool {
	for _, word := range words {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}

func overlap(a, b []string) int {
	set := make(map[string]struct{}, len(b))
	for _, token := range b {
		set[token] = struct{}{}
	}
	seen := make(map[string]struct{}, len(a))
	count := 0
	for _, token := range a {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := set[token]; ok {
			count++
		}
	}
	return count
}

func emojiFor(status string) string {
	if emoji, ok := statusEmoji[strings.ToLower(status)]; ok {
		return emoji
	}
	return "📋"
}

func messageFor(status string) string {
	if msg, ok := statusMessage[strings.ToLower(status)]; ok {
		return msg
	}
	return "📞 Consulta con nuestro equipo para más detalles."
}
