package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "cuanto demora el envio", NormalizeText("¿Cuánto demora el envío?"))
	assert.Equal(t, "manana", NormalizeText("  MAÑANA!!  "))
	assert.Equal(t, "", NormalizeText(""))
}

func TestTokenizeES(t *testing.T) {
	tokens := TokenizeES("cuanto demora el envio de mi pedido")
	assert.Equal(t, []string{"cuanto", "demora", "envio", "pedido"}, tokens)
}

func TestRedactPII(t *testing.T) {
	redacted := RedactPII("escríbeme a juan@example.com o al +56 9 12345678")
	assert.NotContains(t, redacted, "juan@example.com")
	assert.Contains(t, redacted, "[email_redactado]")
	assert.Contains(t, redacted, "[fono_redactado]")

	redacted = RedactPII("mi rut es 12.345.678-9")
	assert.Contains(t, redacted, "[rut_redactado]")
}

func TestRedactPIIKeepsOrderNumbers(t *testing.T) {
	redacted := RedactPII("mi pedido es el 1234567 y aún no llega")
	assert.Contains(t, redacted, "1234567")
	assert.NotContains(t, redacted, "[fono_redactado]")

	redacted = RedactPII("el número de orden 88214455 sigue pendiente")
	assert.Contains(t, redacted, "88214455")

	// Mobile shapes still get masked.
	redacted = RedactPII("llámame al 912345678")
	assert.Contains(t, redacted, "[fono_redactado]")
	redacted = RedactPII("o al 56912345678")
	assert.Contains(t, redacted, "[fono_redactado]")
}
