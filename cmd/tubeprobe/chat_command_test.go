package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"tubeprobe/internal/testsupport"
)

type capturedChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestChatCommandPrintsResponse(t *testing.T) {
	var captured capturedChatRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Here are some cat videos."}}]}`))
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.YtDlpStub{},
		testsupport.WithLLMEndpoint(server.URL),
		testsupport.WithLLMKey("sk-test"),
	)

	out, _, err := runCLI(t, []string{"chat"}, env.configPath)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if out != "Response: Here are some cat videos.\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("unexpected authorization header %q", auth)
	}
	if captured.Model != "openai/gpt-3.5-turbo" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" || captured.Messages[0].Content != defaultChatPrompt {
		t.Fatalf("unexpected messages %+v", captured.Messages)
	}
}

func TestChatCommandSendsPromptModelAndSystem(t *testing.T) {
	var captured capturedChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.YtDlpStub{}, testsupport.WithLLMEndpoint(server.URL))

	args := []string{"chat", "--model", "anthropic/claude-3-haiku", "--system", "Be brief.", "find", "dog", "videos"}
	if _, _, err := runCLI(t, args, env.configPath); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if captured.Model != "anthropic/claude-3-haiku" {
		t.Fatalf("expected model override, got %q", captured.Model)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %+v", captured.Messages)
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "Be brief." {
		t.Fatalf("unexpected system message %+v", captured.Messages[0])
	}
	if captured.Messages[1].Content != "find dog videos" {
		t.Fatalf("unexpected prompt %q", captured.Messages[1].Content)
	}
}

func TestChatCommandFailurePropagates(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream provider unavailable"}}`))
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.YtDlpStub{}, testsupport.WithLLMEndpoint(server.URL))

	out, errOut, err := runCLI(t, []string{"chat", "hello"}, env.configPath)
	if err == nil {
		t.Fatal("expected chat error")
	}
	if !strings.HasPrefix(err.Error(), "chat: ") {
		t.Fatalf("expected chat prefix, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no stdout on failure, got %q", out)
	}
	requireContains(t, errOut, "chat completion failed")
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single attempt by default, got %d", got)
	}
}

func TestChatCommandRequiresAPIKey(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.YtDlpStub{}, testsupport.WithLLMKey(""))

	_, _, err := runCLI(t, []string{"chat", "hello"}, env.configPath)
	if err == nil {
		t.Fatal("expected error without an API key")
	}
	requireContains(t, err.Error(), "llm.api_key")
}

func TestChatCommandListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"data":[
			{"id":"openai/gpt-3.5-turbo","name":"OpenAI: GPT-3.5 Turbo","context_length":16385},
			{"id":"anthropic/claude-3-haiku","name":"Anthropic: Claude 3 Haiku","context_length":200000}
		]}`))
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.YtDlpStub{}, testsupport.WithLLMEndpoint(server.URL))

	out, _, err := runCLI(t, []string{"chat", "--list-models"}, env.configPath)
	if err != nil {
		t.Fatalf("chat --list-models: %v", err)
	}
	requireContains(t, out, "Available models:")
	requireContains(t, out, "openai/gpt-3.5-turbo")
	requireContains(t, out, "16,385")
	requireContains(t, out, "200,000")
	if strings.Index(out, "anthropic/claude-3-haiku") > strings.Index(out, "openai/gpt-3.5-turbo") {
		t.Fatalf("expected models sorted by id:\n%s", out)
	}
}
