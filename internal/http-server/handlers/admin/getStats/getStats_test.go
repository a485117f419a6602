package getStats

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"eventTicketing/internal/http-server/handlers/admin/getStats/mocks"
	"eventTicketing/internal/lib/logger/handlers/slogdiscard"
	"eventTicketing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetStatsHandler(t *testing.T) {
	t.Parallel()

	mockGetter := mocks.NewStatsGetter(t)
	mockGetter.On("Stats").Return(models.Stats{
		TotalEvents:      4,
		ActiveEvents:     2,
		TotalSales:       decimal.NewFromInt(730050),
		TotalTicketsSold: 420,
		TotalCapacity:    800,
		OccupancyRate:    52.5,
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rr := httptest.NewRecorder()

	New(slogdiscard.NewDiscardLogger(), mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"status": "OK",
		"stats": {
			"totalEvents": 4,
			"activeEvents": 2,
			"totalSales": 730050,
			"totalTicketsSold": 420,
			"totalCapacity": 800,
			"occupancyRate": 52.5
		}
	}`, rr.Body.String())
}
