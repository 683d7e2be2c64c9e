// Package inventory implements the outbound inventory port over HTTP.
//
// The inventory service exposes a single reservation endpoint. A reservation
// is all-or-nothing: the service either reserves every requested line and
// answers with a reservation id, or refuses the whole request naming the
// products that are short.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client calls the inventory service over HTTP and maps its answers onto the
// two failure modes of the port: a definitive business refusal
// (InsufficientInventoryError) and a transient infrastructure fault
// (InventoryUnavailableError).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an inventory client for the service at baseURL.
// A non-positive timeout falls back to a 5 second default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type reserveRequest struct {
	OrderID string               `json:"order_id"`
	Items   []reserveRequestItem `json:"items"`
}

type reserveRequestItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type reserveResponse struct {
	ReservationID string `json:"reservation_id"`
}

type reserveConflictResponse struct {
	InsufficientProducts []string `json:"insufficient_products"`
}

// Reserve implements ports.InventoryClient.
//
// Status mapping:
//   - 200, 201: success, body carries the reservation id
//   - 409: insufficient stock, body lists the short products
//   - anything else, or a transport error: inventory unavailable
func (c *Client) Reserve(
	ctx context.Context,
	orderID kernel.UUID,
	items []ports.ReservationItem,
) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if len(items) == 0 {
		return "", errs.NewValueIsRequiredError("items")
	}

	payload := reserveRequest{
		OrderID: orderID.String(),
		Items:   make([]reserveRequestItem, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, reserveRequestItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errs.NewInventoryUnavailableError(err)
	}

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/v1/reservations",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", errs.NewInventoryUnavailableError(err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", errs.NewInventoryUnavailableError(err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return c.decodeReservation(response.Body)
	case http.StatusConflict:
		return "", c.decodeConflict(response.Body)
	default:
		return "", errs.NewInventoryUnavailableError(
			fmt.Errorf("inventory service answered %d", response.StatusCode),
		)
	}
}

func (c *Client) decodeReservation(body io.Reader) (string, error) {
	var decoded reserveResponse
	if err := json.NewDecoder(body).Decode(&decoded); err != nil {
		return "", errs.NewInventoryUnavailableError(err)
	}
	if decoded.ReservationID == "" {
		return "", errs.NewInventoryUnavailableError(
			errors.New("inventory service answered without a reservation id"),
		)
	}
	return decoded.ReservationID, nil
}

func (c *Client) decodeConflict(body io.Reader) error {
	var decoded reserveConflictResponse
	if err := json.NewDecoder(body).Decode(&decoded); err != nil {
		// A 409 is still a refusal even when the body is unreadable.
		return errs.NewInsufficientInventoryError(nil)
	}
	return errs.NewInsufficientInventoryError(decoded.InsufficientProducts)
}
