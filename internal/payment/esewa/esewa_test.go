package esewa

import (
	"bytes"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"eventTicketing/internal/config"
	"eventTicketing/internal/lib/logger/handlers/slogdiscard"
	"eventTicketing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = config.Esewa{
	MerchantID: "EPAYTEST",
	SecretKey:  "8gBm/:&EnhH.1/q",
	BaseURL:    "https://rc-epay.esewa.com.np/",
	SuccessURL: "http://localhost:8080/payment/success",
	FailureURL: "http://localhost:8080/payment/failure",
}

var txPattern = regexp.MustCompile(`^TXN-\d+-[0-9a-z]{9}$`)

type recordingObserver struct {
	statuses []models.PaymentStatus
}

func (r *recordingObserver) ObservePayment(status models.PaymentStatus) {
	r.statuses = append(r.statuses, status)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func newBuilder(opts ...Option) *Builder {
	return New(slogdiscard.NewDiscardLogger(), &testConfig, opts...)
}

func TestSign_KnownVectors(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	testCases := []struct {
		name        string
		total       decimal.Decimal
		txID        string
		productCode string
		expected    string
	}{
		{
			name:        "integer amount",
			total:       decimal.NewFromInt(100),
			txID:        "11-201-13",
			productCode: "EPAYTEST",
			expected:    "5DZywcrTKD0gia/rsSMcrRHmJl+4Tbol6S+lWgdJ94E=",
		},
		{
			name:        "decimal amount keeps no trailing zero",
			total:       decimal.RequireFromString("1500.50"),
			txID:        "TXN-1700000000000-abc123xyz",
			productCode: "EVENT-1",
			expected:    "qx3nu8wwHTbs3gzvufwpWT/7lUOSdPSXwM6Tr4mcd1c=",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, b.Sign(tc.total, tc.txID, tc.productCode))
		})
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"total_amount=100,transaction_uuid=TXN-1-abc,product_code=EVENT-7",
		Message(decimal.RequireFromString("100.00"), "TXN-1-abc", "EVENT-7"),
	)
}

func TestGenerateTransactionID(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)
	b := newBuilder(
		WithClock(func() time.Time { return now }),
		WithRandom(bytes.NewReader([]byte{0, 1, 10, 35, 36, 37, 71, 255, 252, 9, 40})),
	)

	id, err := b.GenerateTransactionID()

	require.NoError(t, err)
	assert.Equal(t, "TXN-1700000000123-01az01z94", id, "bytes 252 and above are skipped")
}

func TestGenerateTransactionID_UniformSuffix(t *testing.T) {
	t.Parallel()

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	// Each pass over 0..255 accepts 252 bytes, seven per symbol.
	b := newBuilder(WithRandom(bytes.NewReader(bytes.Repeat(all, 9))))

	counts := make(map[rune]int)
	for i := 0; i < 252; i++ {
		id, err := b.GenerateTransactionID()
		require.NoError(t, err)

		for _, r := range id[len(id)-9:] {
			counts[r]++
		}
	}

	require.Len(t, counts, 36)
	for r, n := range counts {
		assert.Equal(t, 63, n, "symbol %q", r)
	}
}

func TestGenerateTransactionID_RejectedBytesExhaustReader(t *testing.T) {
	t.Parallel()

	b := newBuilder(WithRandom(bytes.NewReader(bytes.Repeat([]byte{255}, 32))))

	_, err := b.GenerateTransactionID()
	assert.Error(t, err)
}

func TestGenerateTransactionID_Format(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	id, err := b.GenerateTransactionID()

	require.NoError(t, err)
	assert.Regexp(t, txPattern, id)
}

func TestGenerateTransactionID_RandomError(t *testing.T) {
	t.Parallel()

	b := newBuilder(WithRandom(failingReader{}))

	_, err := b.GenerateTransactionID()
	require.Error(t, err)

	_, err = b.PrepareRequest(decimal.NewFromInt(100), "EVENT-1")
	assert.ErrorContains(t, err, "entropy exhausted")
}

func TestPrepareRequest(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	req, err := b.PrepareRequest(decimal.NewFromInt(3000), "EVENT-1")
	require.NoError(t, err)

	assert.Equal(t, "3000", req.Amount.String())
	assert.True(t, req.TaxAmount.IsZero())
	assert.True(t, req.ServiceCharge.IsZero())
	assert.True(t, req.DeliveryCharge.IsZero())
	assert.Equal(t, "3000", req.TotalAmount.String())
	assert.Regexp(t, txPattern, req.TransactionUUID)
	assert.Equal(t, "EVENT-1", req.ProductCode)
	assert.Equal(t, testConfig.SuccessURL, req.SuccessURL)
	assert.Equal(t, testConfig.FailureURL, req.FailureURL)
	assert.Equal(t, "total_amount,transaction_uuid,product_code", req.SignedFieldNames)
	assert.NotEmpty(t, req.Signature)
}

func TestPrepareRequest_SignatureRoundTrip(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	req, err := b.PrepareRequest(decimal.RequireFromString("1250.75"), "EVENT-2")
	require.NoError(t, err)

	assert.Equal(t, req.Signature, b.Sign(req.TotalAmount, req.TransactionUUID, req.ProductCode))
	assert.True(t, b.Verify(req))

	tampered := req
	tampered.TotalAmount = decimal.NewFromInt(1)
	assert.False(t, b.Verify(tampered))

	other := New(slogdiscard.NewDiscardLogger(), &config.Esewa{SecretKey: "another-secret"})
	assert.False(t, other.Verify(req))
}

func TestPrepareRequest_UniquePerCall(t *testing.T) {
	t.Parallel()

	fixed := time.UnixMilli(1700000000000)
	b := newBuilder(WithClock(func() time.Time { return fixed }))

	first, err := b.PrepareRequest(decimal.NewFromInt(500), "EVENT-3")
	require.NoError(t, err)
	second, err := b.PrepareRequest(decimal.NewFromInt(500), "EVENT-3")
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionUUID, second.TransactionUUID)
	assert.NotEqual(t, first.Signature, second.Signature)
}

func TestFormFields(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	req, err := b.PrepareRequest(decimal.NewFromInt(100), "EVENT-1")
	require.NoError(t, err)

	fields := b.FormFields(req)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{
		"amount", "tax_amount", "total_amount", "transaction_uuid", "product_code",
		"product_service_charge", "product_delivery_charge", "success_url", "failure_url",
		"signed_field_names", "signature", "merchant_id",
	}, names)
	assert.Equal(t, Field{Name: "merchant_id", Value: "EPAYTEST"}, fields[len(fields)-1])
	assert.Equal(t, Field{Name: "tax_amount", Value: "0"}, fields[1])
	assert.Equal(t, "https://rc-epay.esewa.com.np/epay/main", b.FormAction())
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	b := newBuilder(WithObserver(obs))

	req, err := b.PrepareRequest(decimal.NewFromInt(100), "EVENT-1")
	require.NoError(t, err)

	var buf bytes.Buffer
	resp := b.Submit(&buf, req)

	assert.Equal(t, models.PaymentSuccess, resp.Status)
	assert.Equal(t, "Redirecting to eSewa payment gateway...", resp.Message)

	html := buf.String()
	assert.Contains(t, html, `<form method="POST" action="https://rc-epay.esewa.com.np/epay/main" target="_blank">`)
	assert.Contains(t, html, `name="transaction_uuid" value="`+req.TransactionUUID+`"`)
	assert.Contains(t, html, `name="merchant_id" value="EPAYTEST"`)
	assert.Contains(t, html, `name="signed_field_names" value="total_amount,transaction_uuid,product_code"`)
	assert.Equal(t, 12, strings.Count(html, `type="hidden"`))

	assert.Equal(t, []models.PaymentStatus{models.PaymentSuccess}, obs.statuses)
}

func TestSubmit_WriteFailure(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	b := newBuilder(WithObserver(obs))

	req, err := b.PrepareRequest(decimal.NewFromInt(100), "EVENT-1")
	require.NoError(t, err)

	resp := b.Submit(failingWriter{}, req)

	assert.Equal(t, models.PaymentFailure, resp.Status)
	assert.Equal(t, "Payment initialization failed. Please try again.", resp.Message)
	assert.Equal(t, []models.PaymentStatus{models.PaymentFailure}, obs.statuses)
}

func TestVerifyPayment(t *testing.T) {
	t.Parallel()

	ok := VerifyPayment(map[string]string{"status": "COMPLETE", "transaction_uuid": "TXN-1-abc"})
	assert.Equal(t, models.PaymentResponse{
		Status:        models.PaymentSuccess,
		TransactionID: "TXN-1-abc",
		Message:       "Payment completed successfully",
	}, ok)

	pending := VerifyPayment(map[string]string{"status": "PENDING", "transaction_uuid": "TXN-1-abc"})
	assert.Equal(t, models.PaymentFailure, pending.Status)
	assert.Empty(t, pending.TransactionID)

	empty := VerifyPayment(nil)
	assert.Equal(t, models.PaymentFailure, empty.Status)
}

func TestPaymentStatus(t *testing.T) {
	t.Parallel()

	resp := PaymentStatus("TXN-42")

	assert.Equal(t, models.PaymentSuccess, resp.Status)
	assert.Equal(t, "TXN-42", resp.TransactionID)
}

func TestDecodeCallback(t *testing.T) {
	t.Parallel()

	payload := `{"transaction_code":"000AWEO","status":"COMPLETE","total_amount":1000,"transaction_uuid":"TXN-1-abc","product_code":"EPAYTEST"}`
	data := base64.StdEncoding.EncodeToString([]byte(payload))

	fields, err := DecodeCallback(data)

	require.NoError(t, err)
	assert.Equal(t, "COMPLETE", fields["status"])
	assert.Equal(t, "TXN-1-abc", fields["transaction_uuid"])
	assert.Equal(t, "1000", fields["total_amount"])

	_, err = DecodeCallback("%%%")
	assert.Error(t, err)

	_, err = DecodeCallback(base64.StdEncoding.EncodeToString([]byte("not json")))
	assert.Error(t, err)
}
