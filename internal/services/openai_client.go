package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "math/rand"
  "net"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
  "github.com/kirdar-ai/kirdar-backend/internal/logger"
)

// ChatMessage is one turn of a chat-completions conversation.
type ChatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

// ModelProfile pins model and sampling settings to a call purpose so every
// caller of the same purpose hits the API identically.
type ModelProfile struct {
  Purpose     string
  Model       string
  Temperature float64
  MaxTokens   int
  JSONMode    bool
}

var (
  ProfileBulkGeneration = ModelProfile{Purpose: "bulk_generation", Model: "gpt-4", Temperature: 0.8}
  ProfileSimulation     = ModelProfile{Purpose: "simulation", Model: "gpt-4", Temperature: 0.7}
  ProfileEvaluation     = ModelProfile{Purpose: "evaluation", Model: "gpt-4o", Temperature: 0.3, MaxTokens: 2000}
  ProfileCoaching       = ModelProfile{Purpose: "coaching", Model: "gpt-4o", Temperature: 0.3, MaxTokens: 1000, JSONMode: true}
)

type OpenAIClient interface {
  Chat(ctx context.Context, messages []ChatMessage, profile ModelProfile) (string, error)
  Complete(ctx context.Context, system string, user string, profile ModelProfile) (string, error)
}

type openAIClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  httpClient *http.Client

  maxRetries int
}

func NewOpenAIClient(log *logger.Logger) (OpenAIClient, error) {
  apiKey := os.Getenv("OPENAI_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing OPENAI_API_KEY")
  }

  baseURL := os.Getenv("OPENAI_BASE_URL")
  if baseURL == "" {
    baseURL = "https://api.openai.com"
  }

  timeoutSec := 120
  if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  maxRetries := 4
  if v := os.Getenv("OPENAI_MAX_RETRIES"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
      maxRetries = parsed
    }
  }

  return &openAIClient{
    log:        log.With("service", "OpenAIClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    maxRetries: maxRetries,
  }, nil
}

type openAIHTTPError struct {
  StatusCode int
  Body       string
}

func (e *openAIHTTPError) Error() string {
  return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

// isQuotaErr matches the provider's hard-quota rejection. Those never clear
// on their own, so retrying them only burns the retry budget.
func isQuotaErr(err error) bool {
  var httpErr *openAIHTTPError
  if !errors.As(err, &httpErr) {
    return false
  }
  if httpErr.StatusCode != 429 && httpErr.StatusCode != 403 {
    return false
  }
  return strings.Contains(httpErr.Body, "insufficient_quota")
}

func isRetryableHTTP(code int) bool {
  if code == 408 || code == 429 {
    return true
  }
  if code >= 500 && code <= 599 {
    return true
  }
  return false
}

func isRetryableErr(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
    // if caller canceled, don't retry; if it's our timeout, we will retry anyway.
    // We can only distinguish reliably by checking ctx, which we do in call loop.
    return true
  }
  var netErr net.Error
  if errors.As(err, &netErr) {
    if netErr.Timeout() {
      return true
    }
  }
  var httpErr *openAIHTTPError
  if errors.As(err, &httpErr) {
    return isRetryableHTTP(httpErr.StatusCode)
  }
  return false
}

func jitterSleep(base time.Duration) time.Duration {
  // +/- 20%
  if base <= 0 {
    return 0
  }
  j := 0.2
  delta := base.Seconds() * j
  low := base.Seconds() - delta
  high := base.Seconds() + delta
  if low < 0 {
    low = 0
  }
  v := low + rand.Float64()*(high-low)
  return time.Duration(v * float64(time.Second))
}

func (c *openAIClient) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
  var buf bytes.Buffer
  if body != nil {
    if err := json.NewEncoder(&buf).Encode(body); err != nil {
      return nil, nil, err
    }
  }

  req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
  if err != nil {
    return nil, nil, err
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return nil, nil, err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return resp, nil, readErr
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return resp, raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  return resp, raw, nil
}

func (c *openAIClient) do(ctx context.Context, method, path string, body any, out any) error {
  // exponential backoff: 1s, 2s, 4s, 8s (cap ~10s)
  backoff := 1 * time.Second

  var lastErr error
  for attempt := 0; attempt <= c.maxRetries; attempt++ {
    if ctx.Err() != nil {
      return ctx.Err()
    }

    resp, raw, err := c.doOnce(ctx, method, path, body)
    if err == nil {
      if out == nil {
        return nil
      }
      if uErr := json.Unmarshal(raw, out); uErr != nil {
        return apierr.MalformedResponse(fmt.Errorf("openai decode error: %w", uErr))
      }
      return nil
    }
    lastErr = err

    // Caller gave up; surface the cancellation untouched.
    if ctx.Err() != nil {
      return ctx.Err()
    }

    if isQuotaErr(err) {
      return apierr.QuotaExceeded(err)
    }

    // If non-retryable: fail immediately
    if !isRetryableErr(err) {
      return err
    }

    // If we've exhausted retries: return last error
    if attempt == c.maxRetries {
      break
    }

    // Respect Retry-After when present
    sleepFor := backoff
    if resp != nil {
      ra := strings.TrimSpace(resp.Header.Get("Retry-After"))
      if ra != "" {
        if secs, parseErr := strconv.Atoi(ra); parseErr == nil && secs > 0 {
          sleepFor = time.Duration(secs) * time.Second
        }
      }
    }

    // Cap + jitter
    if sleepFor > 10*time.Second {
      sleepFor = 10 * time.Second
    }
    sleepFor = jitterSleep(sleepFor)

    c.log.Warn("OpenAI request retrying",
      "path", path,
      "attempt", attempt+1,
      "max_retries", c.maxRetries,
      "sleep", sleepFor.String(),
      "error", err.Error(),
    )

    time.Sleep(sleepFor)
    backoff *= 2
  }

  return apierr.TransientUnavailable(lastErr)
}

// ---- Chat completions ----

type chatCompletionRequest struct {
  Model          string         `json:"model"`
  Messages       []ChatMessage  `json:"messages"`
  Temperature    float64        `json:"temperature"`
  MaxTokens      int            `json:"max_tokens,omitempty"`
  ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
    } `json:"message"`
    FinishReason string `json:"finish_reason"`
  } `json:"choices"`
}

func (c *openAIClient) Chat(ctx context.Context, messages []ChatMessage, profile ModelProfile) (string, error) {
  if len(messages) == 0 {
    return "", errors.New("messages required")
  }

  req := chatCompletionRequest{
    Model:       profile.Model,
    Messages:    messages,
    Temperature: profile.Temperature,
    MaxTokens:   profile.MaxTokens,
  }
  if profile.JSONMode {
    req.ResponseFormat = map[string]any{"type": "json_object"}
  }

  var resp chatCompletionResponse
  if err := c.do(ctx, "POST", "/v1/chat/completions", req, &resp); err != nil {
    return "", err
  }
  if len(resp.Choices) == 0 {
    return "", apierr.MalformedResponse(errors.New("no choices in completion response"))
  }
  content := resp.Choices[0].Message.Content
  if content == "" {
    return "", apierr.MalformedResponse(errors.New("empty completion content"))
  }
  return content, nil
}

func (c *openAIClient) Complete(ctx context.Context, system string, user string, profile ModelProfile) (string, error) {
  return c.Chat(ctx, []ChatMessage{
    {Role: "system", Content: system},
    {Role: "user", Content: user},
  }, profile)
}
