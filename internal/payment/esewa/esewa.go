// Package esewa prepares and signs eSewa ePay requests.
//
// The success/failure callbacks are NOT verified against the gateway:
// VerifyPayment trusts the redirect parameters and PaymentStatus always
// reports success. Production use needs server-side verification with the
// gateway's status API.
package esewa

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"eventTicketing/internal/config"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/models"

	"github.com/shopspring/decimal"
)

const (
	SignedFieldNames = "total_amount,transaction_uuid,product_code"
	StatusComplete   = "COMPLETE"

	formPath          = "/epay/main"
	transactionPrefix = "TXN-"
	suffixLength      = 9
	suffixCharset     = "0123456789abcdefghijklmnopqrstuvwxyz"

	// Random bytes at or above this are discarded so every charset symbol is equally likely.
	unbiasedLimit = 256 - 256%len(suffixCharset)
)

// Observer is told the outcome of every Submit.
type Observer interface {
	ObservePayment(status models.PaymentStatus)
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func WithRandom(r io.Reader) Option {
	return func(b *Builder) { b.random = r }
}

func WithObserver(o Observer) Option {
	return func(b *Builder) { b.observer = o }
}

type Builder struct {
	log      *slog.Logger
	cfg      config.Esewa
	now      func() time.Time
	random   io.Reader
	observer Observer
}

func New(log *slog.Logger, cfg *config.Esewa, opts ...Option) *Builder {
	b := &Builder{
		log:    log,
		cfg:    *cfg,
		now:    time.Now,
		random: rand.Reader,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// GenerateTransactionID returns TXN-<unix millis>-<9 random base36 chars>.
// Ids are unique with high probability only; nothing checks earlier ids.
func (b *Builder) GenerateTransactionID() (string, error) {
	const op = "payment.esewa.GenerateTransactionID"

	suffix := make([]byte, 0, suffixLength)
	buf := make([]byte, suffixLength)

	for len(suffix) < suffixLength {
		n := suffixLength - len(suffix)
		if _, err := io.ReadFull(b.random, buf[:n]); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		for _, c := range buf[:n] {
			if int(c) < unbiasedLimit {
				suffix = append(suffix, suffixCharset[int(c)%len(suffixCharset)])
			}
		}
	}

	return transactionPrefix + strconv.FormatInt(b.now().UnixMilli(), 10) + "-" + string(suffix), nil
}

// Message builds the canonical string covered by the signature. Amounts are
// rendered without trailing zeros, so 100 is "100" and 99.50 is "99.5".
func Message(totalAmount decimal.Decimal, transactionID, productCode string) string {
	return fmt.Sprintf("total_amount=%s,transaction_uuid=%s,product_code=%s",
		totalAmount.String(), transactionID, productCode)
}

// Sign returns the base64 HMAC-SHA256 of the canonical message.
func (b *Builder) Sign(totalAmount decimal.Decimal, transactionID, productCode string) string {
	mac := hmac.New(sha256.New, []byte(b.cfg.SecretKey))
	mac.Write([]byte(Message(totalAmount, transactionID, productCode)))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature of req from its own signed fields.
func (b *Builder) Verify(req models.PaymentRequest) bool {
	expected := b.Sign(req.TotalAmount, req.TransactionUUID, req.ProductCode)
	return hmac.Equal([]byte(expected), []byte(req.Signature))
}

// PrepareRequest builds a signed request. There is no tax or fee model, so
// the total equals amount.
func (b *Builder) PrepareRequest(amount decimal.Decimal, productCode string) (models.PaymentRequest, error) {
	txID, err := b.GenerateTransactionID()
	if err != nil {
		return models.PaymentRequest{}, err
	}

	tax := decimal.Zero
	service := decimal.Zero
	delivery := decimal.Zero
	total := amount.Add(tax).Add(service).Add(delivery)

	return models.PaymentRequest{
		Amount:           amount,
		TaxAmount:        tax,
		TotalAmount:      total,
		TransactionUUID:  txID,
		ProductCode:      productCode,
		ServiceCharge:    service,
		DeliveryCharge:   delivery,
		SuccessURL:       b.cfg.SuccessURL,
		FailureURL:       b.cfg.FailureURL,
		SignedFieldNames: SignedFieldNames,
		Signature:        b.Sign(total, txID, productCode),
	}, nil
}

type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FormAction is the gateway endpoint the form posts to.
func (b *Builder) FormAction() string {
	return strings.TrimRight(b.cfg.BaseURL, "/") + formPath
}

// FormFields lists the form inputs in submission order, merchant_id last.
func (b *Builder) FormFields(req models.PaymentRequest) []Field {
	return []Field{
		{Name: "amount", Value: req.Amount.String()},
		{Name: "tax_amount", Value: req.TaxAmount.String()},
		{Name: "total_amount", Value: req.TotalAmount.String()},
		{Name: "transaction_uuid", Value: req.TransactionUUID},
		{Name: "product_code", Value: req.ProductCode},
		{Name: "product_service_charge", Value: req.ServiceCharge.String()},
		{Name: "product_delivery_charge", Value: req.DeliveryCharge.String()},
		{Name: "success_url", Value: req.SuccessURL},
		{Name: "failure_url", Value: req.FailureURL},
		{Name: "signed_field_names", Value: req.SignedFieldNames},
		{Name: "signature", Value: req.Signature},
		{Name: "merchant_id", Value: b.cfg.MerchantID},
	}
}

var formTemplate = template.Must(template.New("esewa").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Redirecting to eSewa</title></head>
<body onload="document.forms[0].submit()">
<form method="POST" action="{{.Action}}" target="_blank">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue to eSewa</button></noscript>
</form>
</body>
</html>
`))

// Submit writes an auto-submitting form that posts req to the gateway in a
// new browsing context. The result only says whether the redirect could be
// started, never whether the payment went through.
func (b *Builder) Submit(w io.Writer, req models.PaymentRequest) models.PaymentResponse {
	const op = "payment.esewa.Submit"

	log := b.log.With(
		slog.String("op", op),
		slog.String("transaction_uuid", req.TransactionUUID),
	)

	var buf bytes.Buffer
	err := formTemplate.Execute(&buf, struct {
		Action string
		Fields []Field
	}{
		Action: b.FormAction(),
		Fields: b.FormFields(req),
	})
	if err == nil {
		_, err = buf.WriteTo(w)
	}

	if err != nil {
		log.Error("eSewa payment initialization failed", sl.Err(err))
		b.observe(models.PaymentFailure)

		return models.PaymentResponse{
			Status:  models.PaymentFailure,
			Message: "Payment initialization failed. Please try again.",
		}
	}

	log.Info("redirecting to eSewa", slog.String("product_code", req.ProductCode))
	b.observe(models.PaymentSuccess)

	return models.PaymentResponse{
		Status:  models.PaymentSuccess,
		Message: "Redirecting to eSewa payment gateway...",
	}
}

// VerifyPayment trusts the callback data: status COMPLETE means success.
// The callback signature is not checked.
func VerifyPayment(data map[string]string) models.PaymentResponse {
	if data["status"] == StatusComplete {
		return models.PaymentResponse{
			Status:        models.PaymentSuccess,
			TransactionID: data["transaction_uuid"],
			Message:       "Payment completed successfully",
		}
	}

	return models.PaymentResponse{
		Status:  models.PaymentFailure,
		Message: "Payment was not completed",
	}
}

// PaymentStatus always reports success for the given transaction.
func PaymentStatus(transactionID string) models.PaymentResponse {
	return models.PaymentResponse{
		Status:        models.PaymentSuccess,
		TransactionID: transactionID,
		Message:       "Payment verified successfully",
	}
}

// DecodeCallback unpacks the base64 JSON "data" parameter the gateway adds
// to the success redirect. Non-string values are rendered with fmt.
func DecodeCallback(data string) (map[string]string, error) {
	const op = "payment.esewa.DecodeCallback"

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var fields map[string]any
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}

	return out, nil
}

func (b *Builder) observe(status models.PaymentStatus) {
	if b.observer != nil {
		b.observer.ObservePayment(status)
	}
}
