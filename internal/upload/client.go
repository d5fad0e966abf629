package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/tuya/fastdata/internal/fetch"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Response is a successful upload result.
type Response struct {
	File   FileInfo
	Status int
	Data   any
	Pretty string
}

// Client posts files to the backend upload endpoint.
type Client struct {
	URL    string
	Source string
	HTTP   *http.Client
	Now    func() time.Time
}

// Upload sends f as multipart fields file, timestamp and source. Any
// non-2xx status fails with "HTTP error! status: <code>".
func (c *Client) Upload(ctx context.Context, f FileInfo) (Response, error) {
	body, contentType, err := c.encode(f)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("POST %s: %w", c.URL, err)
	}
	defer resp.Body.Close()

	if err := fetch.CheckStatus(resp); err != nil {
		io.Copy(io.Discard, resp.Body)
		return Response{}, err
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Response{}, fmt.Errorf("decoding response: %w", err)
	}
	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return Response{}, fmt.Errorf("formatting response: %w", err)
	}
	return Response{File: f, Status: resp.StatusCode, Data: data, Pretty: string(pretty)}, nil
}

func (c *Client) encode(f FileInfo) (*bytes.Buffer, string, error) {
	src, err := os.Open(f.Path)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer src.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	ct := f.MIME
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", f.Name, err)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if err := w.WriteField("timestamp", now().UTC().Format(TimestampLayout)); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("source", c.Source); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
