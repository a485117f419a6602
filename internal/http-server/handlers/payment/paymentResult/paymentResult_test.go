package paymentResult

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"eventTicketing/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
)

func TestSuccessHandler(t *testing.T) {
	t.Parallel()

	encode := func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}

	testCases := []struct {
		name           string
		query          url.Values
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Encoded callback complete",
			query: url.Values{"data": {encode(
				`{"status":"COMPLETE","transaction_uuid":"TXN-1-abc","total_amount":"3000.0","product_code":"EVENT-1"}`,
			)}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"success","transactionId":"TXN-1-abc","message":"Payment completed successfully"}`,
		},
		{
			name:           "Encoded callback pending",
			query:          url.Values{"data": {encode(`{"status":"PENDING","transaction_uuid":"TXN-1-abc"}`)}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"failure","message":"Payment was not completed"}`,
		},
		{
			name:           "Plain query parameters",
			query:          url.Values{"status": {"COMPLETE"}, "transaction_uuid": {"TXN-2-def"}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"success","transactionId":"TXN-2-def","message":"Payment completed successfully"}`,
		},
		{
			name:           "No parameters",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"failure","message":"Payment was not completed"}`,
		},
		{
			name:           "Undecodable data",
			query:          url.Values{"data": {"***"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid callback data"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/payment/success?"+tc.query.Encode(), nil)
			rr := httptest.NewRecorder()

			NewSuccess(slogdiscard.NewDiscardLogger()).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestFailureHandler(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		query      url.Values
		expectedID string
	}{
		{name: "transaction_uuid", query: url.Values{"transaction_uuid": {"TXN-1-abc"}}, expectedID: "TXN-1-abc"},
		{name: "transactionId", query: url.Values{"transactionId": {"TXN-2-def"}}, expectedID: "TXN-2-def"},
		{
			name:       "transaction_uuid wins",
			query:      url.Values{"transaction_uuid": {"TXN-1-abc"}, "transactionId": {"TXN-2-def"}},
			expectedID: "TXN-1-abc",
		},
		{name: "absent"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/payment/failure?"+tc.query.Encode(), nil)
			rr := httptest.NewRecorder()

			NewFailure(slogdiscard.NewDiscardLogger()).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"status":"failure"`)

			if tc.expectedID == "" {
				assert.NotContains(t, rr.Body.String(), "transactionId")
			} else {
				assert.Contains(t, rr.Body.String(), `"transactionId":"`+tc.expectedID+`"`)
			}
		})
	}
}
