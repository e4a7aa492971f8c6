// Package stockclient talks to the stock service over its HTTP API.
package stockclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/VatsalRaj481/Arise/internal/core/port"
)

var _ port.StockGateway = (*Client)(nil)

const (
	stocksPath     = "/api/stocks"
	defaultTimeout = 2 * time.Second
)

type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type stockDTO struct {
	ProductID    int64 `json:"productId"`
	Quantity     int   `json:"quantity"`
	ReorderLevel int   `json:"reorderLevel"`
	LowStock     bool  `json:"lowStock"`
}

// A Client is a [port.StockGateway] backed by the stock service HTTP API.
//
// Every call is bounded by the client timeout. Expiry and any response
// other than the expected ones are reported as unavailability.
type Client struct {
	baseURL string
	doer    HTTPDoer
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration, doer HTTPDoer) (Client, error) {
	const op = "stockclient.New"

	u, err := url.Parse(baseURL)
	if err != nil {
		return Client{}, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Client{}, fmt.Errorf("%s: base url %q: scheme and host required", op, baseURL)
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if doer == nil {
		doer = http.DefaultClient
	}

	base := u.JoinPath(stocksPath).String()
	return Client{baseURL: base, doer: doer, timeout: timeout}, nil
}

func (c Client) CreateStock(ctx context.Context, s domain.StockSnapshot) error {
	const op = "Client.CreateStock"

	if err := c.send(ctx, http.MethodPost, c.baseURL, toDTO(s)); err != nil {
		return fmt.Errorf("%s: product %d: %w", op, s.ProductID, err)
	}
	return nil
}

func (c Client) UpdateStock(
	ctx context.Context, productID int64, s domain.StockSnapshot,
) error {
	const op = "Client.UpdateStock"

	s.ProductID = productID
	if err := c.send(ctx, http.MethodPut, c.stockURL(productID), toDTO(s)); err != nil {
		return fmt.Errorf("%s: product %d: %w", op, productID, err)
	}
	return nil
}

func (c Client) DeleteStock(ctx context.Context, productID int64) error {
	const op = "Client.DeleteStock"

	if err := c.send(ctx, http.MethodDelete, c.stockURL(productID), nil); err != nil {
		return fmt.Errorf("%s: product %d: %w", op, productID, err)
	}
	return nil
}

func (c Client) GetStock(ctx context.Context, productID int64) domain.StockResult {
	const op = "Client.GetStock"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.stockURL(productID), nil,
	)
	if err != nil {
		return domain.StockUnavailableResult(fmt.Errorf("%s: %w", op, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return domain.StockUnavailableResult(
			fmt.Errorf("%s: %w: %w", op, domain.ErrStockUnavailable, err),
		)
	}
	defer closeBody(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return domain.StockAbsentResult()
	case http.StatusNotFound:
		return domain.StockMissingResult(
			fmt.Errorf("%s: product %d: %w", op, productID, domain.ErrStockNotFound),
		)
	default:
		return domain.StockUnavailableResult(
			fmt.Errorf("%s: %w", op, statusErr(resp.StatusCode)),
		)
	}

	var dto *stockDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.StockAbsentResult()
		}
		return domain.StockUnavailableResult(
			fmt.Errorf("%s: %w: invalid body: %w", op, domain.ErrStockUnavailable, err),
		)
	}
	if dto == nil {
		return domain.StockAbsentResult()
	}
	return domain.StockFoundResult(dto.toDomain())
}

func (c Client) send(ctx context.Context, method, target string, body any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStockUnavailable, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return statusErr(resp.StatusCode)
}

func (c Client) stockURL(productID int64) string {
	return c.baseURL + "/" + strconv.FormatInt(productID, 10)
}

func statusErr(code int) error {
	switch code {
	case http.StatusNotFound:
		return domain.ErrStockNotFound
	case http.StatusConflict:
		return domain.ErrStockConflict
	default:
		return fmt.Errorf("%w: unexpected status %d", domain.ErrStockUnavailable, code)
	}
}

func closeBody(b io.ReadCloser) {
	_, _ = io.Copy(io.Discard, b)
	_ = b.Close()
}

func toDTO(s domain.StockSnapshot) stockDTO {
	return stockDTO{
		ProductID:    s.ProductID,
		Quantity:     s.Quantity,
		ReorderLevel: s.ReorderLevel,
		LowStock:     s.LowStock,
	}
}

func (d stockDTO) toDomain() domain.StockSnapshot {
	return domain.StockSnapshot{
		ProductID:    d.ProductID,
		Quantity:     d.Quantity,
		ReorderLevel: d.ReorderLevel,
		LowStock:     d.LowStock,
	}
}
