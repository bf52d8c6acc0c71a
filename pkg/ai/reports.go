package ai

import (
	"context"
	"time"

	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

// ReportResponse is the envelope for AI-assisted admin reports. Raw
// analytics are always present; Insights only when the model is enabled
// and the call succeeds.
type ReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData  any    `json:"raw_data"`
	Insights string `json:"ai_insights,omitempty"`
	Summary  string `json:"summary"`
	Error    string `json:"error,omitempty"`
}

// GenerateSalesReport fetches sales analytics for the period and layers
// model commentary on top when available.
func GenerateSalesReport(ctx context.Context, from, to time.Time) (*ReportResponse, error) {
	analytics, err := mongo.GetSalesAnalytics(ctx, from, to)
	if err != nil {
		return errorResponse("Failed to fetch sales data: " + err.Error()), err
	}
	return withInsights(ctx, analytics, salesReportSystemPrompt, salesDataPrompt(analytics), "sales"), nil
}

// GenerateInventoryReport reports stock alerts with model commentary.
func GenerateInventoryReport(ctx context.Context) (*ReportResponse, error) {
	status, err := mongo.GetInventoryStatus(ctx)
	if err != nil {
		return errorResponse("Failed to fetch inventory data: " + err.Error()), err
	}
	return withInsights(ctx, status, inventoryReportSystemPrompt, inventoryDataPrompt(status), "inventory"), nil
}

// GenerateTopProductsReport analyzes the best sellers.
func GenerateTopProductsReport(ctx context.Context, limit int) (*ReportResponse, error) {
	products, err := mongo.GetTopProducts(ctx, limit)
	if err != nil {
		return errorResponse("Failed to fetch top products data: " + err.Error()), err
	}
	return withInsights(ctx, products, topProductsSystemPrompt, topProductsPrompt(products, limit), "top products"), nil
}

func withInsights(ctx context.Context, raw any, systemPrompt, userPrompt, kind string) *ReportResponse {
	response := &ReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: raw,
			Summary: "Raw " + kind + " data (AI insights unavailable)",
		},
	}
	if !IsEnabled() {
		return response
	}

	insights, err := generateCompletion(ctx, systemPrompt, userPrompt)
	if err != nil {
		response.Data.Error = "AI analysis failed: " + err.Error()
		return response
	}
	response.Data.Insights = insights
	response.Data.Summary = "AI-generated " + kind + " insights and recommendations"
	return response
}

func errorResponse(message string) *ReportResponse {
	return &ReportResponse{
		Status:      "error",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data:        ReportData{Error: message},
	}
}
