package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/turtacn/NutriLens/pkg/client"
)

func TestServicePing(t *testing.T) {
	stack := newTestStack(t)

	result, err := stack.SDK.Ping(context.Background())
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if result.App != "nutrilens" || !result.OK {
		t.Errorf("ping = %+v, want app nutrilens and ok true", result)
	}
}

func TestHealthProbes(t *testing.T) {
	t.Run("Liveness", func(t *testing.T) {
		stack := newTestStack(t)
		resp, err := http.Get(stack.API.URL + "/healthz")
		if err != nil {
			t.Fatalf("get healthz: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("healthz status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("ReadyWhenDependenciesUp", func(t *testing.T) {
		stack := newTestStack(t)
		status, body := getReadiness(t, stack)
		if status != http.StatusOK {
			t.Fatalf("readyz status = %d, want 200", status)
		}
		if body.Status != "ready" {
			t.Errorf("readiness = %q, want ready", body.Status)
		}
		for _, name := range []string{"redis", "openfoodfacts"} {
			if _, ok := body.Components[name]; !ok {
				t.Errorf("component %q missing from readiness report: %v", name, body.Components)
			}
		}
	})

	t.Run("NotReadyWhenRedisDown", func(t *testing.T) {
		stack := newTestStack(t)
		stack.Redis.Close()

		status, body := getReadiness(t, stack)
		if status != http.StatusServiceUnavailable {
			t.Fatalf("readyz status = %d, want 503 with redis down", status)
		}
		if body.Status != "not_ready" {
			t.Errorf("readiness = %q, want not_ready", body.Status)
		}
		if check, ok := body.Components["redis"]; !ok || check.Error == "" {
			t.Errorf("redis component = %+v, want a recorded error", check)
		}
	})
}

// readinessBody mirrors the readiness probe response shape.
type readinessBody struct {
	Status     string `json:"status"`
	Components map[string]struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"components"`
}

func getReadiness(t *testing.T, stack *testStack) (int, readinessBody) {
	t.Helper()
	resp, err := http.Get(stack.API.URL + "/readyz")
	if err != nil {
		t.Fatalf("get readyz: %v", err)
	}
	defer resp.Body.Close()

	var body readinessBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode readyz body: %v", err)
	}
	return resp.StatusCode, body
}

func TestImageAnalysisUnavailable(t *testing.T) {
	stack := newTestStack(t)

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	_, err := stack.SDK.Analysis().AnalyzeImage(context.Background(), "label.jpg", bytes.NewReader(jpeg))

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want an APIError", err)
	}
	if !apiErr.IsServerError() || apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 while no OCR engine is configured", apiErr.StatusCode)
	}
}
