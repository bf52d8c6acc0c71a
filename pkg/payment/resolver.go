package payment

import (
	"context"
	"net/url"
	"strconv"

	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
)

// State tracks the resolver through its linear flow. There are no loops:
// a resolver starts at StateStart and ends in exactly one terminal state.
type State int

const (
	StateStart State = iota
	StateConfirming
	StateReconciling
	StateFetchingReceipt
	StateResolvedSuccess
	StateResolvedAmbiguous
	StateResolvedError
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateConfirming:
		return "confirming"
	case StateReconciling:
		return "reconciling"
	case StateFetchingReceipt:
		return "fetching_receipt"
	case StateResolvedSuccess:
		return "resolved_success"
	case StateResolvedAmbiguous:
		return "resolved_ambiguous"
	case StateResolvedError:
		return "resolved_error"
	}
	return "unknown"
}

// Terminal reports whether the state ends the flow.
func (s State) Terminal() bool {
	return s == StateResolvedSuccess || s == StateResolvedAmbiguous || s == StateResolvedError
}

// Confirmer is the one gateway operation the resolver needs. *Client
// satisfies it.
type Confirmer interface {
	Confirm(ctx context.Context, tokenWS string) (*Confirmation, error)
}

// CartClearer lets the resolver empty the session cart on success.
// *cart.Store satisfies it.
type CartClearer interface {
	Clear(ctx context.Context)
}

// Outcome is the single terminal status/message pair a resolver produces
// per payment return.
type Outcome struct {
	State              State         `json:"state"`
	Approved           bool          `json:"approved"`
	Message            string        `json:"message"`
	OrderNumber        int64         `json:"pedido_id,omitempty"`
	Order              *models.Order `json:"order,omitempty"`
	ReceiptUnavailable bool          `json:"receipt_unavailable,omitempty"`
}

// Resolver turns a gateway return redirect into a payment outcome and,
// when possible, the order receipt.
//
// Payment confirmation and receipt retrieval are independent concerns
// with independent failure modes. A receipt-fetch failure or an
// unresolvable order number never downgrades a confirmed payment; those
// branches degrade to an approved outcome with less detail.
type Resolver struct {
	Gateway      Confirmer
	Cart         CartClearer
	FetchOrder   func(ctx context.Context, number int64) (*models.Order, error)
	PendingOrder func(ctx context.Context) (int64, bool)

	state   State
	outcome *Outcome
}

// State returns the resolver's current position in the flow.
func (r *Resolver) State() State {
	return r.state
}

// Resolve runs the flow for a gateway return. The confirm call is issued
// at most once per resolver: re-entry after the flow has left StateStart
// returns the recorded outcome without touching the gateway again. The
// gateway token is single-use, so the guard lives here rather than
// trusting the transport.
func (r *Resolver) Resolve(ctx context.Context, query url.Values) *Outcome {
	if r.state != StateStart {
		return r.outcome
	}
	r.state = StateConfirming

	token := query.Get("token_ws")
	if token == "" {
		return r.terminate(&Outcome{
			State:   StateResolvedError,
			Message: "Token de pago no recibido",
		})
	}

	conf, err := r.Gateway.Confirm(ctx, token)
	if err != nil {
		return r.terminate(&Outcome{
			State:   StateResolvedError,
			Message: "Error al confirmar el pago: " + err.Error(),
		})
	}

	if !IsApprovedStatus(conf.Status) {
		message := "Pago procesado"
		if conf.Status == "rejected" {
			message = "Pago rechazado. No se realizaron cargos."
		}
		return r.terminate(&Outcome{
			State:   StateResolvedError,
			Message: message,
		})
	}

	// Success is final once the gateway confirms; the cart goes first so
	// a failure further down cannot leave paid items behind.
	r.state = StateReconciling
	if r.Cart != nil {
		r.Cart.Clear(ctx)
	}

	number, ok := r.resolveOrderNumber(ctx, query, conf)
	if !ok {
		logger.L.Warnw("payment approved but order number unresolved",
			"buy_order", conf.BuyOrder)
		return r.terminate(&Outcome{
			State:    StateResolvedAmbiguous,
			Approved: true,
			Message:  "Pago aprobado. No pudimos identificar tu pedido, contacta a soporte con tu comprobante.",
		})
	}

	r.state = StateFetchingReceipt
	order, err := r.FetchOrder(ctx, number)
	if err != nil {
		logger.L.Warnw("payment approved but receipt fetch failed",
			"pedido_id", number, "error", err)
		return r.terminate(&Outcome{
			State:              StateResolvedSuccess,
			Approved:           true,
			OrderNumber:        number,
			ReceiptUnavailable: true,
			Message:            "Pago aprobado. La boleta no está disponible por ahora, contacta a soporte si la necesitas.",
		})
	}

	return r.terminate(&Outcome{
		State:       StateResolvedSuccess,
		Approved:    true,
		OrderNumber: number,
		Order:       order,
		Message:     "Pago aprobado. ¡Gracias por tu compra!",
	})
}

func (r *Resolver) terminate(outcome *Outcome) *Outcome {
	r.state = outcome.State
	r.outcome = outcome
	return outcome
}

// resolveOrderNumber tries each source in strict priority order until one
// yields a positive order number: explicit query parameter, confirmation
// field, buy-order parse, stashed pending order, confirmation metadata.
func (r *Resolver) resolveOrderNumber(ctx context.Context, query url.Values, conf *Confirmation) (int64, bool) {
	for _, param := range []string{"orderId", "pedido_id"} {
		if n, ok := parseOrderNumber(query.Get(param)); ok {
			return n, true
		}
	}

	if conf.OrderID > 0 {
		return conf.OrderID, true
	}
	if conf.PedidoID > 0 {
		return conf.PedidoID, true
	}

	if n, ok := ExtractOrderID(conf.BuyOrder); ok {
		return n, true
	}

	if r.PendingOrder != nil {
		if n, ok := r.PendingOrder(ctx); ok {
			return n, true
		}
	}

	for _, key := range []string{"orderId", "order_id", "pedido_id"} {
		if n, ok := metaOrderNumber(conf.Meta, key); ok {
			return n, true
		}
	}

	return 0, false
}

func parseOrderNumber(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func metaOrderNumber(meta map[string]any, key string) (int64, bool) {
	if meta == nil {
		return 0, false
	}
	switch value := meta[key].(type) {
	case float64:
		if value > 0 && value == float64(int64(value)) {
			return int64(value), true
		}
	case int:
		if value > 0 {
			return int64(value), true
		}
	case int64:
		if value > 0 {
			return value, true
		}
	case string:
		return parseOrderNumber(value)
	}
	return 0, false
}
