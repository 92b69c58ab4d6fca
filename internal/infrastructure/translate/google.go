package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain"
	"transbot/internal/ports/output"
)

const (
	// DefaultGoogleURL is the public web endpoint used by browser extensions.
	DefaultGoogleURL = "https://translate.googleapis.com"
	// DefaultGoogleTimeout bounds one HTTP round trip.
	DefaultGoogleTimeout = 10 * time.Second
)

var _ output.Translator = (*GoogleClient)(nil)

// GoogleClient implements the Translator port against the unauthenticated
// translate_a/single endpoint (client=gtx).
type GoogleClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewGoogleClient creates a GoogleClient. baseURL may be empty.
func NewGoogleClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	if timeout <= 0 {
		timeout = DefaultGoogleTimeout
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &GoogleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Translate translates text into targetLang. sourceLang may be domain.SourceAuto.
func (c *GoogleClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyText
	}
	if sourceLang == "" {
		sourceLang = domain.SourceAuto
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", googleCode(sourceLang))
	q.Set("tl", googleCode(targetLang))
	q.Set("dt", "t")
	q.Set("q", text)
	endpoint := c.baseURL + "/translate_a/single?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": sourceLang,
		"target_lang": targetLang,
		"text_length": len(text),
	}).Debug("Translating text with Google")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse extracts the translation from the nested array payload:
// [[["translated","original",...],...],null,"detected-source",...]
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("decode response: empty payload")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("decode response: no translated segments")
	}
	return b.String(), nil
}

// googleCode converts catalog codes to the endpoint's format ("zh-cn" -> "zh-CN").
func googleCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		return code[:idx] + "-" + strings.ToUpper(code[idx+1:])
	}
	return code
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
