package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"teamboard/internal/application/dto"
	"teamboard/internal/coordinator"
	"teamboard/internal/infrastructure/config"
)

// RemoteError is a failure reported by the daemon. Message is the
// server's error text unchanged.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("daemon error (%d): %s", e.Status, e.Message)
}

// RemoteMessage returns the text the daemon sent
func (e *RemoteError) RemoteMessage() string {
	return e.Message
}

// NotFound reports whether the daemon answered 404
func (e *RemoteError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Client talks to the daemon over its unix socket or TCP address
type Client struct {
	baseURL    string
	socketPath string
	http       *http.Client
}

var _ coordinator.Remote = (*Client)(nil)

// NewClient creates a daemon client from configuration
func NewClient(cfg *config.Config) *Client {
	if addr := cfg.Daemon.Address; addr != "" {
		return NewHTTPClient("http://"+addr, nil)
	}

	socketPath := cfg.Daemon.SocketPath()
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}
	c := NewHTTPClient("http://teamboardd", &http.Client{Transport: transport})
	c.socketPath = socketPath
	return c
}

// Target describes where the client connects, for error messages
func (c *Client) Target() string {
	if c.socketPath != "" {
		return c.socketPath
	}
	return c.baseURL
}

// NewHTTPClient creates a client for baseURL. A nil httpClient uses a
// default with a request timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// do sends body as JSON and decodes the envelope's data into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer resp.Body.Close()

	var env envelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &RemoteError{Status: resp.StatusCode, Message: fmt.Sprintf("unreadable response: %v", err)}
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Ping checks if the daemon is running and responding
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// ListBoards returns board summaries
func (c *Client) ListBoards(ctx context.Context) ([]dto.BoardListDTO, error) {
	var out []dto.BoardListDTO
	if err := c.do(ctx, http.MethodGet, APIPrefix+"/boards", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBoard returns a board with its lists and cards
func (c *Client) GetBoard(ctx context.Context, boardID string) (*dto.BoardDTO, error) {
	var out dto.BoardDTO
	if err := c.do(ctx, http.MethodGet, APIPrefix+"/boards/"+url.PathEscape(boardID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBoard creates a board
func (c *Client) CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*dto.BoardDTO, error) {
	var out dto.BoardDTO
	if err := c.do(ctx, http.MethodPost, APIPrefix+"/boards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBoard removes a board
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	return c.do(ctx, http.MethodDelete, APIPrefix+"/boards/"+url.PathEscape(boardID), nil, nil)
}

// CreateList adds a list to a board
func (c *Client) CreateList(ctx context.Context, boardID string, req dto.CreateListRequest) (*dto.ListDTO, error) {
	var out dto.ListDTO
	if err := c.do(ctx, http.MethodPost, APIPrefix+"/boards/"+url.PathEscape(boardID)+"/lists", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateList renames or repositions a list
func (c *Client) UpdateList(ctx context.Context, listID string, req dto.UpdateListRequest) (*dto.ListDTO, error) {
	var out dto.ListDTO
	if err := c.do(ctx, http.MethodPut, APIPrefix+"/lists/"+url.PathEscape(listID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteList removes a list
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	return c.do(ctx, http.MethodDelete, APIPrefix+"/lists/"+url.PathEscape(listID), nil, nil)
}

// ReorderLists renumbers a board's lists
func (c *Client) ReorderLists(ctx context.Context, boardID string, req dto.ReorderListsRequest) ([]dto.ListDTO, error) {
	var out []dto.ListDTO
	if err := c.do(ctx, http.MethodPut, APIPrefix+"/boards/"+url.PathEscape(boardID)+"/lists/order", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCard adds a card to a list
func (c *Client) CreateCard(ctx context.Context, listID string, req dto.CreateCardRequest) (*dto.CardDTO, error) {
	var out dto.CardDTO
	if err := c.do(ctx, http.MethodPost, APIPrefix+"/lists/"+url.PathEscape(listID)+"/cards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCard changes card fields
func (c *Client) UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest) (*dto.CardDTO, error) {
	var out dto.CardDTO
	if err := c.do(ctx, http.MethodPut, APIPrefix+"/cards/"+url.PathEscape(cardID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCard removes a card
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, APIPrefix+"/cards/"+url.PathEscape(cardID), nil, nil)
}

// MoveCards moves a card within or across lists
func (c *Client) MoveCards(ctx context.Context, req dto.MoveCardsRequest) (*dto.MoveCardsResult, error) {
	var out dto.MoveCardsResult
	if err := c.do(ctx, http.MethodPost, APIPrefix+"/cards/move", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
