package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tourvia/internal/domain"
)

// APIClient talks to a tourvia server over its JSON API.
type APIClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewAPIClient creates a new API client.
func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewAPIClientFromProfile creates an API client from a saved profile.
func NewAPIClientFromProfile(profile *Profile) *APIClient {
	if profile == nil {
		return nil
	}
	return NewAPIClient(profile.ServerURL, profile.Token)
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// envelope is the server's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// listPayload is the data shape of paginated listings.
type listPayload struct {
	Items json.RawMessage `json:"items"`
	Total int             `json:"total"`
}

func (c *APIClient) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	fullURL, err := url.JoinPath(c.BaseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to join URL path: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// handleResponse unwraps the response envelope into result. The response
// body is always closed.
func (c *APIClient) handleResponse(resp *http.Response, result interface{}) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if len(body) > 0 {
		_ = json.Unmarshal(body, &env)
	}

	if resp.StatusCode >= 400 {
		apiError := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiError.Code = env.Error.Code
			apiError.Message = env.Error.Message
		}
		if apiError.Message == "" {
			apiError.Message = string(body)
		}
		return apiError
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// handleListResponse unwraps a paginated envelope into items, returning the
// exact total.
func (c *APIClient) handleListResponse(resp *http.Response, items interface{}) (int, error) {
	var payload listPayload
	if err := c.handleResponse(resp, &payload); err != nil {
		return 0, err
	}
	if len(payload.Items) > 0 {
		if err := json.Unmarshal(payload.Items, items); err != nil {
			return 0, fmt.Errorf("failed to unmarshal list items: %w", err)
		}
	}
	return payload.Total, nil
}

// Health checks server liveness.
func (c *APIClient) Health(ctx context.Context) error {
	fullURL, err := url.JoinPath(c.BaseURL, "/health")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "health check failed"}
	}
	return nil
}

// Login authenticates and keeps the access token on the client.
func (c *APIClient) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var pair domain.TokenPair
	if err := c.handleResponse(resp, &pair); err != nil {
		return nil, err
	}
	c.Token = pair.AccessToken
	return &pair, nil
}

// ListProducts retrieves the admin product listing.
func (c *APIClient) ListProducts(ctx context.Context, opts *ProductListOptions) ([]domain.Product, error) {
	endpoint := "/api/admin/products"
	if opts != nil {
		params := url.Values{}
		if opts.Search != "" {
			params.Add("q", opts.Search)
		}
		if opts.Region != "" {
			params.Add("region", opts.Region)
		}
		if opts.Status != "" {
			params.Add("status", opts.Status)
		}
		if opts.Limit > 0 {
			params.Add("limit", fmt.Sprintf("%d", opts.Limit))
		}
		if paramStr := params.Encode(); paramStr != "" {
			endpoint += "?" + paramStr
		}
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	err = c.handleResponse(resp, &products)
	return products, err
}

// ProductListOptions filters the admin product listing.
type ProductListOptions struct {
	Search string
	Region string
	Status string
	Limit  int
}

// GetProduct retrieves a single product.
func (c *APIClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	endpoint := fmt.Sprintf("/api/admin/products/%s", url.PathEscape(productID))
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	err = c.handleResponse(resp, &product)
	return &product, err
}

// UpdateProductStatus switches a product between draft, published and hidden
// by re-submitting its editable fields with the new status.
func (c *APIClient) UpdateProductStatus(ctx context.Context, product *domain.Product, status string) (*domain.Product, error) {
	input := domain.ProductInput{
		Title:        product.Title,
		Subtitle:     product.Subtitle,
		Region:       product.Region,
		Nights:       product.Nights,
		Days:         product.Days,
		Status:       domain.ProductStatus(status),
		PriceText:    product.PriceText,
		Description:  product.Description,
		ThumbnailURL: product.ThumbnailURL,
		Images:       product.Images,
		Included:     product.Included,
		Excluded:     product.Excluded,
		Notices:      product.Notices,
		Itinerary:    product.Itinerary,
		Departures:   product.Departures,
		ThemeID:      product.ThemeID,
	}

	endpoint := fmt.Sprintf("/api/admin/products/%s", url.PathEscape(product.ID))
	resp, err := c.doRequest(ctx, http.MethodPut, endpoint, input)
	if err != nil {
		return nil, err
	}

	var updated domain.Product
	err = c.handleResponse(resp, &updated)
	return &updated, err
}

// ListBookings retrieves a page of bookings with the exact total.
func (c *APIClient) ListBookings(ctx context.Context, status string, limit int) ([]domain.Booking, int, error) {
	endpoint := "/api/admin/bookings"
	params := url.Values{}
	if status != "" {
		params.Add("status", status)
	}
	if limit > 0 {
		params.Add("limit", fmt.Sprintf("%d", limit))
	}
	if paramStr := params.Encode(); paramStr != "" {
		endpoint += "?" + paramStr
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	total, err := c.handleListResponse(resp, &bookings)
	return bookings, total, err
}

// PatchBooking updates a booking's status and/or admin memo.
func (c *APIClient) PatchBooking(ctx context.Context, bookingID string, patch *domain.AdminBookingPatch) (*domain.Booking, error) {
	endpoint := fmt.Sprintf("/api/admin/bookings/%s", url.PathEscape(bookingID))
	resp, err := c.doRequest(ctx, http.MethodPatch, endpoint, patch)
	if err != nil {
		return nil, err
	}

	var booking domain.Booking
	err = c.handleResponse(resp, &booking)
	return &booking, err
}

// ListInquiries retrieves a page of inquiries with the exact total.
func (c *APIClient) ListInquiries(ctx context.Context, status string, limit int) ([]domain.Inquiry, int, error) {
	endpoint := "/api/admin/inquiries"
	params := url.Values{}
	if status != "" {
		params.Add("status", status)
	}
	if limit > 0 {
		params.Add("limit", fmt.Sprintf("%d", limit))
	}
	if paramStr := params.Encode(); paramStr != "" {
		endpoint += "?" + paramStr
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}

	var inquiries []domain.Inquiry
	total, err := c.handleListResponse(resp, &inquiries)
	return inquiries, total, err
}

// ListNotices retrieves the admin notice listing.
func (c *APIClient) ListNotices(ctx context.Context, published string) ([]domain.Notice, error) {
	endpoint := "/api/admin/notices"
	if published != "" {
		endpoint += "?published=" + url.QueryEscape(published)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var notices []domain.Notice
	err = c.handleResponse(resp, &notices)
	return notices, err
}

// PatchNotice updates notice fields: publish state, pin state, title, content.
func (c *APIClient) PatchNotice(ctx context.Context, noticeID string, input *domain.NoticeInput) (*domain.Notice, error) {
	endpoint := fmt.Sprintf("/api/admin/notices/%s", url.PathEscape(noticeID))
	resp, err := c.doRequest(ctx, http.MethodPatch, endpoint, input)
	if err != nil {
		return nil, err
	}

	var notice domain.Notice
	err = c.handleResponse(resp, &notice)
	return &notice, err
}

// TestConnection verifies the profile can reach the server.
func (c *APIClient) TestConnection(ctx context.Context) error {
	return c.Health(ctx)
}
