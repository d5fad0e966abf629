// Package fetch holds the small HTTP helpers shared by the client: JSON
// GET, retry with exponential backoff and a sequence-based debouncer.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// CheckStatus returns a *StatusError for non-2xx responses.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// JSON performs a GET and decodes the body into out.
func JSON(ctx context.Context, client *http.Client, url string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := CheckStatus(resp); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// Retry calls fn up to attempts times, sleeping delay, 2*delay, 4*delay...
// between failures. It returns the last error, or ctx.Err() when the
// context ends first.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay << i)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}

// Debouncer hands out sequence numbers so that only the newest of a burst
// of delayed events fires. The UI schedules a timer carrying Next() and
// acts on it only when Current still matches.
type Debouncer struct {
	Delay time.Duration
	seq   uint64
}

// NewDebouncer returns a debouncer with the given delay.
func NewDebouncer(d time.Duration) *Debouncer {
	return &Debouncer{Delay: d}
}

// Next invalidates pending events and returns the new sequence.
func (d *Debouncer) Next() uint64 {
	d.seq++
	return d.seq
}

// Current reports whether seq is the newest sequence.
func (d *Debouncer) Current(seq uint64) bool {
	return seq == d.seq
}

// Cancel invalidates any pending event.
func (d *Debouncer) Cancel() {
	d.seq++
}
