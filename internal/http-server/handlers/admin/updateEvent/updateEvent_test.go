package updateEvent

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventTicketing/internal/http-server/handlers/admin/updateEvent/mocks"
	"eventTicketing/internal/lib/logger/handlers/slogdiscard"
	"eventTicketing/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	current := models.Event{
		ID:          "evt-1",
		Title:       "Old Title",
		Date:        "2024-12-25",
		Time:        "18:00",
		Price:       decimal.NewFromInt(1000),
		MaxTickets:  100,
		SoldTickets: 10,
		Status:      models.StatusActive,
	}

	renamed := current
	renamed.Title = "New Title"

	titlePatch := func(p models.EventPatch) bool {
		return p.Title != nil && *p.Title == "New Title" && p.Price == nil
	}

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(m *mocks.EventUpdater)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			eventID:     "evt-1",
			requestBody: `{"title":"New Title"}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("GetByID", "evt-1").Return(current, true).Once()
				m.On("Update", mock.Anything, "evt-1", mock.MatchedBy(titlePatch)).Return(nil)
				m.On("GetByID", "evt-1").Return(renamed, true).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var response EventResponse
				require.NoError(t, json.Unmarshal([]byte(body), &response))

				assert.Equal(t, "OK", response.Status)
				require.NotNil(t, response.Event)
				assert.Equal(t, "New Title", response.Event.Title)
			},
		},
		{
			name:        "Unknown id is a silent no-op",
			eventID:     "missing",
			requestBody: `{"title":""}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("GetByID", "missing").Return(models.Event{}, false).Once()
				m.On("Update", mock.Anything, "missing", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:        "Empty title",
			eventID:     "evt-1",
			requestBody: `{"title":""}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("GetByID", "evt-1").Return(current, true).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Title is a required field"}`,
		},
		{
			name:        "Negative price",
			eventID:     "evt-1",
			requestBody: `{"price":-5}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("GetByID", "evt-1").Return(current, true).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Price must be at least 0"}`,
		},
		{
			name:        "Zero max tickets",
			eventID:     "evt-1",
			requestBody: `{"maxTickets":0}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("GetByID", "evt-1").Return(current, true).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field MaxTickets must be greater than 0"}`,
		},
		{
			name:        "Invalid status",
			eventID:     "evt-1",
			requestBody: `{"status":"archived"}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("GetByID", "evt-1").Return(current, true).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status must be one of [active inactive sold_out]"}`,
		},
		{
			name:           "Invalid JSON",
			eventID:        "evt-1",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.EventUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Persist failure",
			eventID:     "evt-1",
			requestBody: `{"title":"New Title"}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("GetByID", "evt-1").Return(current, true).Once()
				m.On("Update", mock.Anything, "evt-1", mock.Anything).Return(errors.New("persist events: disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUpdater := mocks.NewEventUpdater(t)
			tc.mockSetup(mockUpdater)

			router := chi.NewRouter()
			router.Patch("/admin/events/{id}", New(logger, mockUpdater))

			req, err := http.NewRequest(http.MethodPatch, "/admin/events/"+tc.eventID, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
