package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/architeacher/storetools/pkg/logger"
)

const (
	SignatureHeader         = "X-Webhook-Signature"
	PlatformSignatureHeader = "X-WC-Webhook-Signature"
)

var (
	ErrSignatureMissing  = errors.New("webhook signature is missing")
	ErrSignatureMismatch = errors.New("webhook signature does not match")
)

// Sign returns base64(HMAC-SHA256(secret, body)), the value deliveries carry.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature with the expected one in constant time.
// An empty secret rejects every delivery.
func VerifySignature(secret string, body []byte, signature string) error {
	if signature == "" || secret == "" {
		return ErrSignatureMissing
	}

	if !hmac.Equal([]byte(signature), []byte(Sign(secret, body))) {
		return ErrSignatureMismatch
	}

	return nil
}

// WebhookSignature rejects deliveries whose body does not match the signature
// header with 401, and hands the verified body on to next.
func WebhookSignature(secret string, maxBodyBytes int64, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "webhook payload is too large")

				return
			}

			signature := r.Header.Get(SignatureHeader)
			if signature == "" {
				signature = r.Header.Get(PlatformSignatureHeader)
			}

			if err := VerifySignature(secret, body, signature); err != nil {
				reqLogger := log.WithContext(r.Context())
				reqLogger.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected webhook delivery")
				writeJSONError(w, http.StatusUnauthorized, "INVALID_SIGNATURE", err.Error())

				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}
