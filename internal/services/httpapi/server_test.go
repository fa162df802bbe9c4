package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/temirov/autotree/internal/services/httpapi"
)

func TestServerRunExposesCapabilities(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		config       httpapi.Config
		expectedCaps []httpapi.Capability
	}{
		{
			name: "single capability",
			config: httpapi.Config{
				Capabilities: []httpapi.Capability{
					{Name: "tree", Description: "Render the project tree"},
				},
				Address: "127.0.0.1:0",
			},
			expectedCaps: []httpapi.Capability{{Name: "tree", Description: "Render the project tree"}},
		},
		{
			name: "multiple capabilities",
			config: httpapi.Config{
				Capabilities: []httpapi.Capability{
					{Name: "depth", Description: "Probe the project depth"},
					{Name: "generate", Description: "Write the tree document"},
				},
			},
			expectedCaps: []httpapi.Capability{
				{Name: "depth", Description: "Probe the project depth"},
				{Name: "generate", Description: "Write the tree document"},
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			server := httpapi.NewServer(testCase.config)
			addressCh := make(chan string, 1)
			errorCh := make(chan error, 1)

			go func() {
				errorCh <- server.Run(ctx, func(address string) {
					addressCh <- address
				})
			}()

			select {
			case address := <-addressCh:
				client := http.Client{Timeout: 2 * time.Second}
				request, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+address+"/capabilities", nil)
				if err != nil {
					t.Fatalf("new request: %v", err)
				}
				response, err := client.Do(request)
				if err != nil {
					t.Fatalf("perform request: %v", err)
				}
				defer response.Body.Close()

				if response.StatusCode != http.StatusOK {
					t.Fatalf("unexpected status: %d", response.StatusCode)
				}
				if response.Header.Get(echo.HeaderXRequestID) == "" {
					t.Fatalf("expected a request identifier header")
				}

				var body struct {
					Capabilities []httpapi.Capability `json:"capabilities"`
				}
				if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
					t.Fatalf("decode response: %v", err)
				}

				if len(body.Capabilities) != len(testCase.expectedCaps) {
					t.Fatalf("expected %d capabilities, got %d", len(testCase.expectedCaps), len(body.Capabilities))
				}
				for index, capability := range body.Capabilities {
					expected := testCase.expectedCaps[index]
					if capability != expected {
						t.Fatalf("capability %d mismatch: got %+v, want %+v", index, capability, expected)
					}
				}
			case <-time.After(2 * time.Second):
				t.Fatalf("server did not start")
			}

			cancel()
			if err := <-errorCh; err != nil {
				t.Fatalf("server error: %v", err)
			}
		})
	}
}

func TestServerCommandRouting(t *testing.T) {
	t.Parallel()

	var receivedPayload string
	server := httpapi.NewServer(httpapi.Config{
		Executors: map[string]httpapi.CommandExecutor{
			"tree": httpapi.CommandExecutorFunc(func(ctx context.Context, request httpapi.CommandRequest) (httpapi.CommandResponse, error) {
				receivedPayload = string(request.Payload)
				return httpapi.CommandResponse{Root: "/project", Output: "body\n", EffectiveDepth: 2}, nil
			}),
			"generate": httpapi.CommandExecutorFunc(func(ctx context.Context, request httpapi.CommandRequest) (httpapi.CommandResponse, error) {
				return httpapi.CommandResponse{}, httpapi.NewCommandExecutionError(http.StatusBadRequest, errors.New("root is required"))
			}),
			"depth": httpapi.CommandExecutorFunc(func(ctx context.Context, request httpapi.CommandRequest) (httpapi.CommandResponse, error) {
				return httpapi.CommandResponse{}, errors.New("boom")
			}),
		},
	})
	handler := server.Handler()

	testCases := []struct {
		name           string
		method         string
		path           string
		body           string
		contentType    string
		expectedStatus int
		expectedText   string
	}{
		{name: "executes command", method: http.MethodPost, path: "/commands/tree", body: `{"root":"/project"}`, expectedStatus: http.StatusOK, expectedText: `"output":"body\n"`},
		{name: "unknown command", method: http.MethodPost, path: "/commands/missing", expectedStatus: http.StatusNotFound, expectedText: "command not found"},
		{name: "execution error status", method: http.MethodPost, path: "/commands/generate", expectedStatus: http.StatusBadRequest, expectedText: "root is required"},
		{name: "untyped error", method: http.MethodPost, path: "/commands/depth", expectedStatus: http.StatusInternalServerError, expectedText: "boom"},
		{name: "wrong method", method: http.MethodGet, path: "/commands/tree", expectedStatus: http.StatusMethodNotAllowed},
		{name: "json_with_charset", method: http.MethodPost, path: "/commands/tree", body: `{"root":"/project"}`, contentType: "application/json; charset=utf-8", expectedStatus: http.StatusOK},
		{name: "plain_text_rejected", method: http.MethodPost, path: "/commands/tree", body: `{"root":"/other"}`, contentType: "text/plain", expectedStatus: http.StatusUnsupportedMediaType, expectedText: "application/json"},
		{name: "missing_content_type_rejected", method: http.MethodPost, path: "/commands/tree", body: `{"root":"/other"}`, contentType: "-", expectedStatus: http.StatusUnsupportedMediaType},
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK, expectedText: `"status":"ok"`},
	}

	for _, testCase := range testCases {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(testCase.body))
		switch {
		case testCase.contentType == "-":
		case testCase.contentType != "":
			request.Header.Set(echo.HeaderContentType, testCase.contentType)
		case testCase.method == http.MethodPost:
			request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		handler.ServeHTTP(recorder, request)
		if recorder.Code != testCase.expectedStatus {
			t.Fatalf("%s: expected status %d, got %d", testCase.name, testCase.expectedStatus, recorder.Code)
		}
		if testCase.expectedText != "" && !strings.Contains(recorder.Body.String(), testCase.expectedText) {
			t.Fatalf("%s: expected body to contain %q, got %q", testCase.name, testCase.expectedText, recorder.Body.String())
		}
	}

	if receivedPayload != `{"root":"/project"}` {
		t.Fatalf("unexpected payload forwarded: %q", receivedPayload)
	}
}
