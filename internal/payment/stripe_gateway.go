package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quiltshop-be/internal/logger"

	"go.uber.org/zap"
)

const stripeBaseURL = "https://api.stripe.com"

type stripeGateway struct {
	apiKey        string
	baseURL       string
	httpClient    *http.Client
	successURL    string
	cancelURL     string
	callbackToken string
}

func NewStripeGateway(apiKey, frontendURL, callbackToken string) Gateway {
	if apiKey == "" {
		logger.L().Warn("Stripe API key is empty")
	}

	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	return &stripeGateway{
		apiKey:  apiKey,
		baseURL: stripeBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		successURL:    frontendURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     frontendURL + "/cart",
		callbackToken: callbackToken,
	}
}

func (g *stripeGateway) CreateCheckoutSession(
	ctx context.Context,
	orderID int64,
	customerEmail string,
	items []LineItem,
) (*CheckoutSession, error) {

	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", orderID),
		zap.Int("item_count", len(items)),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", g.successURL)
	form.Set("cancel_url", g.cancelURL)
	form.Set("metadata[orderId]", strconv.FormatInt(orderID, 10))
	if customerEmail != "" {
		form.Set("customer_email", customerEmail)
	}

	for i, it := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", it.Title)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(it.UnitCents, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(it.Quantity))
		if it.ImageURL != nil && *it.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", *it.ImageURL)
		}
	}

	req, err := http.NewRequestWithContext(
		ctx, "POST", g.baseURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Info("Requesting hosted checkout session")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Stripe request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Stripe returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("stripe error: %s", string(bodyBytes))
	}

	var res struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding Stripe response", zap.Error(err))
		return nil, err
	}

	if res.ID == "" || res.URL == "" {
		return nil, errors.New("stripe response missing session id or url")
	}

	log.Info("Checkout session created", zap.String("session_id", res.ID))

	return &CheckoutSession{
		ID:  res.ID,
		URL: res.URL,
	}, nil
}

func (g *stripeGateway) VerifyWebhook(r *http.Request) error {
	expected := g.callbackToken
	if expected == "" {
		return nil // skip in dev
	}

	if r.Header.Get("X-Callback-Token") != expected {
		return errors.New("invalid webhook signature")
	}
	return nil
}
