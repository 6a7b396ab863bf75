package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RetrievalError is a network, timeout or size-limit failure fetching
// source bytes. It is not retried automatically.
type RetrievalError struct {
	URL    string
	Reason string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed for %s: %s", e.URL, e.Reason)
}

// Client downloads dataset files with a timeout, a response size cap and
// polite per-client pacing. Several source files run to hundreds of
// megabytes, so the transport keeps connections warm and the body is read
// through a hard limit.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	maxBytes   int64
	userAgent  string
	logger     *logrus.Logger
}

// NewClient creates a download client. maxBytes caps any single response
// body; timeout bounds the whole request including body read.
func NewClient(timeout time.Duration, maxBytes int64) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects (max 10)")
				}
				return nil
			},
		},
		// One download every 2s sustained, bursts of 3. Government mirrors
		// throttle aggressive clients.
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 3),
		maxBytes:  maxBytes,
		userAgent: "medicaidgov/1.0 (dataset mirror; contact: ops@medicaidgov.local)",
		logger:    logger,
	}
}

// Download fetches the full body at url. It fails with a RetrievalError on
// network errors, non-2xx statuses and bodies exceeding the size cap.
func (c *Client) Download(ctx context.Context, url, datasetName string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RetrievalError{URL: url, Reason: err.Error()}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RetrievalError{URL: url, Reason: err.Error()}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"dataset": datasetName,
			"url":     url,
			"error":   err.Error(),
		}).Error("download failed")
		return nil, &RetrievalError{URL: url, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RetrievalError{URL: url, Reason: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	// Read one byte past the cap to distinguish "exactly at cap" from
	// "over cap".
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &RetrievalError{URL: url, Reason: err.Error()}
	}
	if int64(len(body)) > c.maxBytes {
		return nil, &RetrievalError{URL: url, Reason: fmt.Sprintf("response exceeds %d byte limit", c.maxBytes)}
	}

	c.logger.WithFields(logrus.Fields{
		"dataset":  datasetName,
		"bytes":    len(body),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("download complete")

	return body, nil
}
