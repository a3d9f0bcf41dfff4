package publisher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mooring/internal/codec"
)

// TimestampLayout is the suffix added to every file a FileSink writes
const TimestampLayout = "20060102150405"

// Sink delivers one encoded snapshot
type Sink interface {
	Publish(ctx context.Context, payload []byte) error
	Describe() string
}

// FileSink writes each snapshot to <dir>/<stem>_<timestamp><ext>. Two
// snapshots within the same second overwrite each other.
type FileSink struct {
	dir  string
	stem string
	ext  string
	now  func() time.Time

	// Written, when set, is called with the path of each file written
	Written func(path string)
}

// NewFileSink creates a sink deriving file names from path, e.g.
// "out/output.json" writes out/output_20250102150405.json
func NewFileSink(path string) *FileSink {
	ext := filepath.Ext(path)
	return &FileSink{
		dir:  filepath.Dir(path),
		stem: strings.TrimSuffix(filepath.Base(path), ext),
		ext:  ext,
		now:  time.Now,
	}
}

// Path returns the file name used for a snapshot taken at t
func (s *FileSink) Path(t time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s%s", s.stem, t.Format(TimestampLayout), s.ext))
}

// Pattern returns the glob matching every file this sink writes
func (s *FileSink) Pattern() string {
	return filepath.Join(s.dir, s.stem+"_*"+s.ext)
}

// Publish writes payload to a new timestamped file, creating the directory
func (s *FileSink) Publish(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := s.Path(s.now())
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if s.Written != nil {
		s.Written(path)
	}
	return nil
}

// Describe returns the file name pattern
func (s *FileSink) Describe() string {
	return s.Pattern()
}

// MediaTyper is implemented by sinks that label payloads with a Content-Type
type MediaTyper interface {
	SetMediaType(mediaType string)
}

// HTTPSink POSTs each snapshot, as JSON unless told otherwise
type HTTPSink struct {
	url         string
	client      *http.Client
	contentType string
}

// NewHTTPSink creates a sink posting to url with the given request timeout
func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		url:         url,
		client:      &http.Client{Timeout: timeout},
		contentType: codec.MediaType("json"),
	}
}

// SetMediaType sets the Content-Type sent with each payload
func (s *HTTPSink) SetMediaType(mediaType string) {
	s.contentType = mediaType
}

// Publish POSTs payload. Any non-2xx status is an error.
func (s *HTTPSink) Publish(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", s.contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post %s: unexpected status %s", s.url, resp.Status)
	}
	return nil
}

// Describe returns the target URL
func (s *HTTPSink) Describe() string {
	return s.url
}
