// internal/app/system/slotclient/slotclient.go

// Package slotclient decrements a user's remaining inventory through the
// /initialslot HTTP resource.
package slotclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.uber.org/zap"
)

// ErrSlotUpdate is the only error Decrement returns. The underlying cause is
// logged.
var ErrSlotUpdate = errors.New("error updating slot")

// DefaultTimeout bounds each HTTP round trip when the config leaves it unset.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Client talks to {BaseURL}/initialslot/{email}.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

// New returns a Client with its own http.Client. timeout <= 0 uses
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

type slotBody struct {
	AllProducts models.Counters `json:"AllProducts"`
}

// Decrement consumes one unit of the counter mapped to skill for email:
// GET the current counters, apply models.Counters.Consume, PATCH them back.
// An unknown skill still performs the round trip without changing anything.
// The read-modify-write is not atomic.
func (c *Client) Decrement(ctx context.Context, email models.Email, skill string) error {
	endpoint := c.BaseURL + "/initialslot/" + url.PathEscape(email.String())

	current, err := c.get(ctx, endpoint)
	if err != nil {
		return c.fail(email, skill, "fetch", err)
	}

	if key, ok := models.SkillLevel(skill); ok {
		current.AllProducts.Consume(key)
	} else {
		c.Log.Warn("unknown skill, slot left unchanged",
			zap.String("email", email.String()),
			zap.String("skill", skill))
	}

	if err := c.patch(ctx, endpoint, current); err != nil {
		return c.fail(email, skill, "update", err)
	}

	c.Log.Debug("slot decremented",
		zap.String("email", email.String()),
		zap.String("skill", skill))
	return nil
}

func (c *Client) fail(email models.Email, skill, step string, err error) error {
	c.Log.Error("slot decrement failed",
		zap.String("email", email.String()),
		zap.String("skill", skill),
		zap.String("step", step),
		zap.Error(err))
	return ErrSlotUpdate
}

func (c *Client) get(ctx context.Context, endpoint string) (slotBody, error) {
	var out slotBody

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, statusError(resp)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&out); err != nil {
		return out, fmt.Errorf("decode slot: %w", err)
	}
	return out, nil
}

func (c *Client) patch(ctx context.Context, endpoint string, body slotBody) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
	return nil
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
}
