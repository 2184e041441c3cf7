package http

import (
	"net/http"

	"scaffoldrent-backend/internal/service"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	insights  service.InsightService
}

func NewDashboardHandler(dashboard service.DashboardService, insights service.InsightService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, insights: insights}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.dashboard.GetAlerts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *DashboardHandler) Insights(w http.ResponseWriter, r *http.Request) {
	text, err := h.insights.GenerateInsights(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insights": text})
}
