package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tubeprobe/internal/testsupport"
)

func TestDoctorCommandReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.YtDlpStub{Version: "2025.06.30"}, testsupport.WithLLMKey(""))

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Configuration ==")
	requireContains(t, out, "== Checks ==")
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "version 2025.06.30")
	requireContains(t, out, "[SKIP] no API key")
	requireContains(t, out, env.configPath)
}

func TestDoctorCommandFailsOnRejectedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"No auth credentials found"}}`))
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.YtDlpStub{}, testsupport.WithLLMEndpoint(server.URL))

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(err.Error(), "one or more checks failed") {
		t.Fatalf("unexpected error %v", err)
	}
	requireContains(t, out, "[ERROR] auth failed")
}
