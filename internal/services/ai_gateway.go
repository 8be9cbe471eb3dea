package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
)

// Sentinel errors for the two upstream statuses that get dedicated user
// copy. Everything else surfaces as a generic gateway error.
var (
  ErrRateLimited        = errors.New("Rate limits exceeded. Please try again in a moment.")
  ErrCreditsExhausted   = errors.New("AI credits exhausted. Please add more credits.")
)

type AIGatewayClient interface {
  ChatCompletion(ctx context.Context, system string, user string) (string, error)
  Model() string
}

type aiGatewayClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
}

func NewAIGatewayClient(log *logger.Logger) (AIGatewayClient, error) {
  apiKey := os.Getenv("AI_GATEWAY_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing AI_GATEWAY_API_KEY")
  }

  baseURL := os.Getenv("AI_GATEWAY_BASE_URL")
  if baseURL == "" {
    baseURL = "https://ai.gateway.lovable.dev"
  }

  model := os.Getenv("AI_GATEWAY_MODEL")
  if model == "" {
    model = "google/gemini-2.5-flash"
  }

  timeoutSec := 60
  if v := os.Getenv("AI_GATEWAY_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  return &aiGatewayClient{
    log:        log.With("service", "AIGatewayClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }, nil
}

func (c *aiGatewayClient) Model() string {
  return c.model
}

type gatewayHTTPError struct {
  StatusCode int
  Body       string
}

func (e *gatewayHTTPError) Error() string {
  return fmt.Sprintf("ai gateway http %d: %s", e.StatusCode, e.Body)
}

type chatCompletionRequest struct {
  Model    string `json:"model"`
  Messages []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  } `json:"messages"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

// ChatCompletion performs exactly one request. There is deliberately no retry
// here: a failed analysis is terminal for that submission and the user
// resubmits.
func (c *aiGatewayClient) ChatCompletion(ctx context.Context, system string, user string) (string, error) {
  req := chatCompletionRequest{Model: c.model}
  req.Messages = []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  }{
    {Role: "system", Content: system},
    {Role: "user", Content: user},
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(req); err != nil {
    return "", err
  }

  httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
  if err != nil {
    return "", err
  }
  httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
  httpReq.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(httpReq)
  if err != nil {
    return "", fmt.Errorf("ai gateway request: %w", err)
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", fmt.Errorf("ai gateway read: %w", readErr)
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    switch resp.StatusCode {
    case http.StatusTooManyRequests:
      return "", ErrRateLimited
    case http.StatusPaymentRequired:
      return "", ErrCreditsExhausted
    }
    c.log.Warn("AI gateway error", "status", resp.StatusCode, "body", string(raw))
    return "", &gatewayHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }

  var parsed chatCompletionResponse
  if uErr := json.Unmarshal(raw, &parsed); uErr != nil {
    return "", fmt.Errorf("ai gateway decode error: %w; raw=%s", uErr, string(raw))
  }
  if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
    return "", fmt.Errorf("No response from AI")
  }
  return parsed.Choices[0].Message.Content, nil
}
