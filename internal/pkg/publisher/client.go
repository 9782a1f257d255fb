// Package publisher is a thin client for the app store publisher API,
// covering the three monetization calls the price-rise tooling needs.
package publisher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"

	"github.com/ougirez/price-rise/internal/domain"
	"github.com/ougirez/price-rise/internal/pkg/constants"
)

// API is the subset of the publisher surface used by the services.
type API interface {
	GetSubscription(ctx context.Context, packageName, productID string) (*domain.Subscription, error)
	PatchSubscription(ctx context.Context, sub *domain.Subscription, regionsVersion string) error
	BatchMigratePrices(ctx context.Context, packageName, productID string, req *domain.BatchMigrateBasePlanPricesRequest) error
}

// TokenSource yields a bearer token for each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	maxRetries uint64
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		tokens:     tokens,
		maxRetries: 5,
	}
}

func (c *Client) GetSubscription(ctx context.Context, packageName, productID string) (*domain.Subscription, error) {
	u := fmt.Sprintf("%s/applications/%s/subscriptions/%s",
		c.baseURL, url.PathEscape(packageName), url.PathEscape(productID))

	var sub domain.Subscription
	if err := c.do(ctx, http.MethodGet, u, nil, &sub); err != nil {
		return nil, fmt.Errorf("get subscription %s: %w", productID, err)
	}

	return &sub, nil
}

// PatchSubscription sends the whole subscription back with an update mask
// restricted to base plans, tagged with the regions version token.
func (c *Client) PatchSubscription(ctx context.Context, sub *domain.Subscription, regionsVersion string) error {
	u := fmt.Sprintf("%s/applications/%s/subscriptions/%s?updateMask=basePlans&regionsVersion.version=%s",
		c.baseURL, url.PathEscape(sub.PackageName), url.PathEscape(sub.ProductID), url.QueryEscape(regionsVersion))

	if err := c.do(ctx, http.MethodPatch, u, sub, nil); err != nil {
		return fmt.Errorf("patch subscription %s: %w", sub.ProductID, err)
	}

	return nil
}

func (c *Client) BatchMigratePrices(ctx context.Context, packageName, productID string, req *domain.BatchMigrateBasePlanPricesRequest) error {
	u := fmt.Sprintf("%s/applications/%s/subscriptions/%s/basePlans:batchMigratePrices",
		c.baseURL, url.PathEscape(packageName), url.PathEscape(productID))

	if err := c.do(ctx, http.MethodPost, u, req, nil); err != nil {
		return fmt.Errorf("batch migrate prices %s: %w", productID, err)
	}

	return nil
}

// do performs one authenticated JSON round trip. Network errors and 5xx
// responses are retried with backoff; 4xx responses are permanent.
func (c *Client) do(ctx context.Context, method, u string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("sonic.Marshal: %w", err)
		}
	}

	var respBody []byte
	err := backoff.Retry(
		func() error {
			token, err := c.tokens.Token(ctx)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("tokens.Token: %w", err))
			}

			var reader io.Reader
			if payload != nil {
				reader = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, u, reader)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequestWithContext: %w", err))
			}
			req.Header.Set("Authorization", "Bearer "+token)
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("httpClient.Do: %w", err)
			}
			defer func() {
				_ = resp.Body.Close()
			}()

			respBody, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("io.ReadAll: %w", err)
			}

			switch {
			case resp.StatusCode == http.StatusNotFound:
				return backoff.Permanent(fmt.Errorf("%w: %s", constants.ErrNoBasePlan, u))
			case resp.StatusCode >= 500:
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			case resp.StatusCode >= 400:
				return backoff.Permanent(fmt.Errorf("status code error: %d %s: %s", resp.StatusCode, resp.Status, respBody))
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
			ctx,
		),
	)
	if err != nil {
		return err
	}

	if out != nil {
		if err := sonic.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("sonic.Unmarshal: %w", err)
		}
	}

	return nil
}
