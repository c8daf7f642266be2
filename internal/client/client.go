package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"rental-dashboard/internal/domain"
)

// ErrSessionExpired is returned when the server rejects the stored token.
// The session file is already cleared by the time callers see it; the
// only recovery is a fresh login.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError carries the backend's detail message for a failed request.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client wraps the dashboard REST API. Every authenticated call attaches
// the bearer token from the session store, and any 401 response clears
// the session before reporting ErrSessionExpired.
type Client struct {
	baseURL string
	http    *http.Client
	session *SessionStore
}

func New(baseURL string, session *SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// Session exposes the underlying store for status and username lookups.
func (c *Client) Session() *SessionStore {
	return c.session
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// do executes the request, handling auth and error decoding uniformly.
func (c *Client) do(req *http.Request, authenticated bool, out any) error {
	if authenticated {
		token := c.session.Token()
		if token == "" {
			return ErrSessionExpired
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		return ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		var d detailResponse
		if err := json.Unmarshal(body, &d); err == nil && d.Detail != "" {
			return &APIError{StatusCode: resp.StatusCode, Detail: d.Detail}
		}
		return &APIError{StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Login authenticates and persists the session on success.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out loginResponse
	if err := c.do(req, false, &out); err != nil {
		// A login 401 means bad credentials, not an expired session.
		if errors.Is(err, ErrSessionExpired) {
			return &APIError{StatusCode: http.StatusUnauthorized, Detail: "Incorrect username or password"}
		}
		return err
	}
	return c.session.Save(out.AccessToken, out.Username)
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	return c.do(req, false, nil)
}

// Logout clears the persisted session. Purely local.
func (c *Client) Logout() {
	c.session.Clear()
}

// FetchRecords returns all rental records with freshly computed states.
func (c *Client) FetchRecords(ctx context.Context) ([]domain.RentalRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/data", nil)
	if err != nil {
		return nil, err
	}
	var records []domain.RentalRecord
	if err := c.do(req, true, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AddRow creates a single record. Optional fields are sent as explicit
// nulls via the record's pointer fields.
func (c *Client) AddRow(ctx context.Context, rec *domain.RentalRecord) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/add-row", rec)
	if err != nil {
		return err
	}
	return c.do(req, true, nil)
}

// EditCell patches one field on the record identified by (tid, lokasi).
func (c *Client) EditCell(ctx context.Context, tid, lokasi, field, value string) error {
	q := url.Values{}
	q.Set("tid", tid)
	q.Set("lokasi", lokasi)
	q.Set("field", field)
	q.Set("value", value)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+"/auth/edit-cell?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, true, nil)
}

// UploadPDF attaches a PDF document to one of the record's file slots.
func (c *Client) UploadPDF(ctx context.Context, tid, lokasi string, slot domain.FileSlot, filename string, file io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("file_type", string(slot)); err != nil {
		return err
	}

	// The server validates the part's content type, so it is set
	// explicitly instead of relying on CreateFormFile's default.
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	partHeader.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(partHeader)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	q := url.Values{}
	q.Set("tid", tid)
	q.Set("lokasi", lokasi)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/upload-pdf?"+q.Encode(), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, true, nil)
}

// DeleteRow removes the record identified by (tid, lokasi).
func (c *Client) DeleteRow(ctx context.Context, tid, lokasi string) error {
	q := url.Values{}
	q.Set("tid", tid)
	q.Set("lokasi", lokasi)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/auth/delete-row?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, true, nil)
}

// BatchDelete removes the records with the given ids and returns the
// server's confirmation message.
func (c *Client) BatchDelete(ctx context.Context, ids []int32) (string, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/batch-delete", ids)
	if err != nil {
		return "", err
	}
	var out messageResponse
	if err := c.do(req, true, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// BulkCreate uploads a workbook whose rows become new records.
func (c *Client) BulkCreate(ctx context.Context, filename string, file io.Reader) (string, error) {
	return c.uploadWorkbook(ctx, "/rental/upload/create", filename, file)
}

// BulkUpdate uploads a workbook whose rows update existing records.
func (c *Client) BulkUpdate(ctx context.Context, filename string, file io.Reader) (string, error) {
	return c.uploadWorkbook(ctx, "/rental/upload/update", filename, file)
}

func (c *Client) uploadWorkbook(ctx context.Context, path, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out messageResponse
	if err := c.do(req, true, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
