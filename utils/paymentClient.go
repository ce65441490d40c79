package utils

import (
	"fmt"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// VerifyPurchaseEvent checks a purchase-completed event against the payment
// provider before it is recorded. When no provider is configured (local
// development, tests) the event is trusted as-is.
func VerifyPurchaseEvent(paymentRef string, amount float64) error {
	if config.AppConfig == nil || config.AppConfig.PaymentApiURL == "" {
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)

	var result struct {
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	}

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		SetQueryParam("reference", paymentRef).
		SetResult(&result).
		Get(config.AppConfig.PaymentApiURL + "/payments/verify")
	if err != nil {
		return fmt.Errorf("payment verification request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("payment verification returned status %d", resp.StatusCode())
	}
	if result.Status != "SUCCEEDED" {
		return fmt.Errorf("payment %s not in SUCCEEDED state: %s", paymentRef, result.Status)
	}
	if result.Amount != amount {
		return fmt.Errorf("payment %s amount mismatch: reported %.2f, event %.2f", paymentRef, result.Amount, amount)
	}
	return nil
}
