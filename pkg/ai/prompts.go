package ai

import (
	"encoding/json"
	"fmt"
)

// System prompts for the admin report types. The store operates in Chile,
// so the model is told to answer in Spanish with CLP amounts.
const (
	salesReportSystemPrompt = `Eres un analista de negocios para una tienda online chilena.
Analiza los datos de ventas entregados y responde en español con:
- Indicadores clave y tendencias del período
- Oportunidades de crecimiento y señales de alerta
- Recomendaciones concretas para el equipo de la tienda
Los montos están en pesos chilenos (CLP). Máximo 4 párrafos.`

	inventoryReportSystemPrompt = `Eres un especialista en gestión de inventario para una tienda online chilena.
Analiza el estado de stock entregado y responde en español con:
- Productos que requieren reposición inmediata
- Patrones de demanda visibles en los datos
- Recomendaciones operativas concretas
Sé breve y accionable.`

	topProductsSystemPrompt = `Eres un analista de productos para una tienda online chilena.
Analiza los productos más vendidos y responde en español con:
- Factores de éxito de los productos líderes
- Oportunidades para mejorar el mix de productos
- Recomendaciones de promoción o precio
Los montos están en pesos chilenos (CLP). Sé breve.`
)

func salesDataPrompt(data any) string {
	encoded, _ := json.MarshalIndent(data, "", "  ")
	return fmt.Sprintf("Analiza los siguientes datos de ventas y entrega conclusiones de negocio:\n\n%s", encoded)
}

func inventoryDataPrompt(data any) string {
	encoded, _ := json.MarshalIndent(data, "", "  ")
	return fmt.Sprintf("Analiza el siguiente estado de inventario y entrega recomendaciones operativas:\n\n%s", encoded)
}

func topProductsPrompt(data any, limit int) string {
	encoded, _ := json.MarshalIndent(data, "", "  ")
	return fmt.Sprintf("Analiza los %d productos más vendidos y entrega conclusiones estratégicas:\n\n%s", limit, encoded)
}
