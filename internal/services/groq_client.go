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

  "github.com/sony/gobreaker"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/logger"
)

// GroqClient talks to the Groq chat-completions endpoint (OpenAI-compatible
// wire format). Single request/response, no streaming. Requests carry an
// explicit timeout, retryable failures back off with jitter, and a circuit
// breaker sheds load once the endpoint is clearly down.
type groqClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
  maxRetries int
  breaker    *gobreaker.CircuitBreaker
}

func NewGroqClient(log *logger.Logger) (TextGenerator, error) {
  apiKey := os.Getenv("GROQ_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing GROQ_API_KEY")
  }

  baseURL := strings.TrimSpace(os.Getenv("GROQ_BASE_URL"))
  if baseURL == "" {
    baseURL = "https://api.groq.com/openai"
  }

  model := strings.TrimSpace(os.Getenv("GROQ_MODEL"))
  if model == "" {
    model = "gemma2-9b-it"
  }

  timeoutSec := 30
  if v := os.Getenv("GROQ_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  maxRetries := 3
  if v := os.Getenv("GROQ_MAX_RETRIES"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
      maxRetries = parsed
    }
  }

  clientLog := log.With("service", "GroqClient")

  st := gobreaker.Settings{
    Name:        "GroqCircuitBreaker",
    MaxRequests: 1,
    Interval:    10 * time.Second,
    Timeout:     30 * time.Second,
    ReadyToTrip: func(counts gobreaker.Counts) bool {
      failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
      return counts.Requests >= 5 && failureRatio >= 0.5
    },
    OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
      clientLog.Warn("Circuit breaker state changed", "from", from.String(), "to", to.String())
    },
  }

  return &groqClient{
    log:        clientLog,
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    maxRetries: maxRetries,
    breaker:    gobreaker.NewCircuitBreaker(st),
  }, nil
}

type chatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type chatCompletionRequest struct {
  Model    string        `json:"model"`
  Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message chatMessage `json:"message"`
  } `json:"choices"`
}

type groqHTTPError struct {
  StatusCode int
  Body       string
}

func (e *groqHTTPError) Error() string {
  return fmt.Sprintf("groq http %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(code int) bool {
  if code == 408 || code == 429 {
    return true
  }
  return code >= 500 && code <= 599
}

func isRetryableErr(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, context.DeadlineExceeded) {
    return true
  }
  var netErr net.Error
  if errors.As(err, &netErr) && netErr.Timeout() {
    return true
  }
  var httpErr *groqHTTPError
  if errors.As(err, &httpErr) {
    return isRetryableHTTP(httpErr.StatusCode)
  }
  return false
}

func jitter(base time.Duration) time.Duration {
  if base <= 0 {
    return 0
  }
  delta := base.Seconds() * 0.2
  low := base.Seconds() - delta
  v := low + rand.Float64()*2*delta
  return time.Duration(v * float64(time.Second))
}

func (gc *groqClient) Generate(ctx context.Context, prompt string) (string, error) {
  result, err := gc.breaker.Execute(func() (interface{}, error) {
    return gc.generateWithRetry(ctx, prompt)
  })
  if err != nil {
    if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
      gc.log.Warn("Groq call rejected by circuit breaker", "error", err)
    }
    return "", fmt.Errorf("%v: %w", err, apperr.ErrUpstream)
  }
  return result.(string), nil
}

func (gc *groqClient) generateWithRetry(ctx context.Context, prompt string) (string, error) {
  backoff := 1 * time.Second

  for attempt := 0; ; attempt++ {
    if ctx.Err() != nil {
      return "", ctx.Err()
    }

    text, err := gc.generateOnce(ctx, prompt)
    if err == nil {
      return text, nil
    }
    if !isRetryableErr(err) || attempt == gc.maxRetries {
      return "", err
    }

    sleepFor := jitter(backoff)
    gc.log.Warn("Groq request retrying",
      "attempt", attempt+1,
      "max_retries", gc.maxRetries,
      "sleep", sleepFor.String(),
      "error", err.Error(),
    )
    select {
    case <-time.After(sleepFor):
    case <-ctx.Done():
      return "", ctx.Err()
    }
    backoff *= 2
  }
}

func (gc *groqClient) generateOnce(ctx context.Context, prompt string) (string, error) {
  body := chatCompletionRequest{
    Model: gc.model,
    Messages: []chatMessage{
      {Role: "system", Content: "You are a helpful assistant."},
      {Role: "user", Content: prompt},
    },
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return "", err
  }

  req, err := http.NewRequestWithContext(ctx, http.MethodPost, gc.baseURL+"/v1/chat/completions", &buf)
  if err != nil {
    return "", err
  }
  req.Header.Set("Authorization", "Bearer "+gc.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := gc.httpClient.Do(req)
  if err != nil {
    return "", err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", readErr
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return "", &groqHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }

  var parsed chatCompletionResponse
  if err := json.Unmarshal(raw, &parsed); err != nil {
    return "", fmt.Errorf("groq decode error: %w; raw=%s", err, string(raw))
  }
  if len(parsed.Choices) == 0 {
    return "", fmt.Errorf("groq returned no choices")
  }
  return parsed.Choices[0].Message.Content, nil
}
