package services

import (
  "context"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "sync/atomic"
  "testing"

  "github.com/kirdar-ai/kirdar-backend/internal/apierr"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries string) OpenAIClient {
  t.Helper()
  srv := httptest.NewServer(handler)
  t.Cleanup(srv.Close)

  t.Setenv("OPENAI_API_KEY", "test-key")
  t.Setenv("OPENAI_BASE_URL", srv.URL)
  t.Setenv("OPENAI_MAX_RETRIES", maxRetries)

  client, err := NewOpenAIClient(testLogger(t))
  if err != nil {
    t.Fatalf("init client: %v", err)
  }
  return client
}

func TestChatRetriesThenSucceeds(t *testing.T) {
  var hits int32
  handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if atomic.AddInt32(&hits, 1) == 1 {
      w.WriteHeader(http.StatusTooManyRequests)
      w.Write([]byte(`{"error": {"code": "rate_limit_exceeded"}}`))
      return
    }
    w.Write([]byte(`{"choices": [{"message": {"content": "hello"}, "finish_reason": "stop"}]}`))
  })

  client := newTestClient(t, handler, "2")
  got, err := client.Complete(context.Background(), "sys", "user", ProfileSimulation)
  if err != nil {
    t.Fatalf("Complete failed: %v", err)
  }
  if got != "hello" {
    t.Fatalf("content = %q, want hello", got)
  }
  if n := atomic.LoadInt32(&hits); n != 2 {
    t.Fatalf("server hit %d times, want 2", n)
  }
}

func TestChatQuotaFailsFast(t *testing.T) {
  var hits int32
  handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&hits, 1)
    w.WriteHeader(http.StatusTooManyRequests)
    w.Write([]byte(`{"error": {"type": "insufficient_quota", "message": "You exceeded your current quota"}}`))
  })

  client := newTestClient(t, handler, "4")
  _, err := client.Complete(context.Background(), "sys", "user", ProfileSimulation)
  if err == nil {
    t.Fatal("expected quota error")
  }
  if got := apierr.KindOf(err); got != apierr.KindQuotaExceeded {
    t.Fatalf("error kind = %q, want %q", got, apierr.KindQuotaExceeded)
  }
  if n := atomic.LoadInt32(&hits); n != 1 {
    t.Fatalf("quota error retried: server hit %d times, want 1", n)
  }
}

func TestChatExhaustedRetriesTagTransient(t *testing.T) {
  var hits int32
  handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&hits, 1)
    w.WriteHeader(http.StatusInternalServerError)
    w.Write([]byte(`{"error": {"message": "upstream exploded"}}`))
  })

  client := newTestClient(t, handler, "1")
  _, err := client.Complete(context.Background(), "sys", "user", ProfileSimulation)
  if err == nil {
    t.Fatal("expected transient error")
  }
  if got := apierr.KindOf(err); got != apierr.KindTransientUnavailable {
    t.Fatalf("error kind = %q, want %q", got, apierr.KindTransientUnavailable)
  }
  if n := atomic.LoadInt32(&hits); n != 2 {
    t.Fatalf("server hit %d times, want 2", n)
  }
}

func TestChatCallerCancellationNotRetried(t *testing.T) {
  ctx, cancel := context.WithCancel(context.Background())
  var hits int32
  handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&hits, 1)
    cancel()
    w.WriteHeader(http.StatusInternalServerError)
    w.Write([]byte(`{"error": {"message": "boom"}}`))
  })

  client := newTestClient(t, handler, "4")
  _, err := client.Complete(ctx, "sys", "user", ProfileSimulation)
  if err == nil {
    t.Fatal("expected error")
  }
  if n := atomic.LoadInt32(&hits); n != 1 {
    t.Fatalf("canceled request retried: server hit %d times, want 1", n)
  }
}

func TestChatJSONModeRequest(t *testing.T) {
  var sawJSONMode bool
  handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    var body struct {
      Model          string `json:"model"`
      ResponseFormat *struct {
        Type string `json:"type"`
      } `json:"response_format"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
      sawJSONMode = body.ResponseFormat != nil && body.ResponseFormat.Type == "json_object"
    }
    w.Write([]byte(`{"choices": [{"message": {"content": "{}"}}]}`))
  })

  client := newTestClient(t, handler, "0")
  if _, err := client.Complete(context.Background(), "sys", "user", ProfileCoaching); err != nil {
    t.Fatalf("Complete failed: %v", err)
  }
  if !sawJSONMode {
    t.Fatal("coaching profile did not request JSON mode")
  }
}
