// Package httpapi exposes project tree commands over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultListenAddress binds the loopback interface on an ephemeral port.
	DefaultListenAddress    = "127.0.0.1:0"
	defaultShutdownDuration = 5 * time.Second
	rootPath                = "/"
	healthPath              = "/health"
	capabilitiesPath        = "/capabilities"
	commandPath             = "/commands/:name"
	commandNameParameter    = "name"
	errorFieldName          = "error"
	statusFieldName         = "status"
	statusHealthy           = "ok"
	errorCommandNotFound    = "command not found"
	errorJSONRequired       = "content type must be " + echo.MIMEApplicationJSON
	requestLogMessage       = "http request"
)

// Capability describes a command exposed by the server.
type Capability struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CommandRequest holds the raw payload supplied by clients.
type CommandRequest struct {
	Payload json.RawMessage
}

// CommandResponse contains the outcome of a command execution.
type CommandResponse struct {
	Root            string   `json:"root,omitempty"`
	Output          string   `json:"output,omitempty"`
	OutputPath      string   `json:"outputPath,omitempty"`
	RequestedDepth  int      `json:"requestedDepth"`
	ProjectMaxDepth int      `json:"projectMaxDepth"`
	EffectiveDepth  int      `json:"effectiveDepth"`
	DepthAdjusted   bool     `json:"depthAdjusted"`
	Notices         []string `json:"notices,omitempty"`
}

// CommandExecutor executes a command based on an incoming request.
type CommandExecutor interface {
	Execute(ctx context.Context, request CommandRequest) (CommandResponse, error)
}

// CommandExecutorFunc adapts a function into a CommandExecutor.
type CommandExecutorFunc func(context.Context, CommandRequest) (CommandResponse, error)

// Execute invokes the underlying function.
func (executor CommandExecutorFunc) Execute(ctx context.Context, request CommandRequest) (CommandResponse, error) {
	return executor(ctx, request)
}

// CommandExecutionError represents a failure accompanied by an HTTP status code.
type CommandExecutionError struct {
	statusCode int
	err        error
}

// Error returns the error string.
func (executionError CommandExecutionError) Error() string {
	return executionError.err.Error()
}

// Unwrap exposes the wrapped error.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.err
}

// StatusCode reports the associated HTTP status code.
func (executionError CommandExecutionError) StatusCode() int {
	return executionError.statusCode
}

// NewCommandExecutionError creates a new CommandExecutionError.
func NewCommandExecutionError(statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return CommandExecutionError{statusCode: statusCode, err: err}
}

// Config defines runtime options for the server.
type Config struct {
	Address         string
	Capabilities    []Capability
	Executors       map[string]CommandExecutor
	ShutdownTimeout time.Duration
	Logger          *zap.Logger
}

// Server serves capability metadata and executes commands over HTTP.
type Server struct {
	config Config
}

// NewServer creates a new Server with defaults applied.
func NewServer(config Config) Server {
	normalized := config
	if normalized.Address == "" {
		normalized.Address = DefaultListenAddress
	}
	if normalized.ShutdownTimeout <= 0 {
		normalized.ShutdownTimeout = defaultShutdownDuration
	}
	if normalized.Capabilities == nil {
		normalized.Capabilities = []Capability{}
	}
	if normalized.Executors == nil {
		normalized.Executors = map[string]CommandExecutor{}
	}
	if normalized.Logger == nil {
		normalized.Logger = zap.NewNop()
	}
	return Server{config: normalized}
}

// Handler returns the routed HTTP handler without binding a listener.
func (server Server) Handler() http.Handler {
	return server.router()
}

// Run starts the server and blocks until the provided context is canceled.
// The notify callback receives the bound address once the listener is active.
func (server Server) Run(ctx context.Context, notify func(string)) error {
	listener, listenErr := net.Listen("tcp", server.config.Address)
	if listenErr != nil {
		return fmt.Errorf("listen on %s: %w", server.config.Address, listenErr)
	}
	actualAddress := listener.Addr().String()

	httpServer := &http.Server{Handler: server.router()}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		serveErr := httpServer.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("serve http api: %w", serveErr)
		}
		return nil
	})

	if notify != nil {
		notify(actualAddress)
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.config.ShutdownTimeout)
		defer cancel()
		shutdownErr := httpServer.Shutdown(shutdownCtx)
		if shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) && !errors.Is(shutdownErr, http.ErrServerClosed) {
			return fmt.Errorf("shutdown http api: %w", shutdownErr)
		}
		return nil
	})

	return group.Wait()
}

func (server Server) router() *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.Use(middleware.Recover())
	router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	router.Use(server.requestLogger())

	router.GET(rootPath, server.handleRoot)
	router.GET(healthPath, server.handleHealth)
	router.GET(capabilitiesPath, server.handleCapabilities)
	router.POST(commandPath, server.handleCommand)
	return router
}

func (server Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(echoContext echo.Context) error {
			startedAt := time.Now()
			handlerErr := next(echoContext)
			if handlerErr != nil {
				echoContext.Error(handlerErr)
			}
			request := echoContext.Request()
			response := echoContext.Response()
			server.config.Logger.Debug(
				requestLogMessage,
				zap.String("request_id", response.Header().Get(echo.HeaderXRequestID)),
				zap.String("method", request.Method),
				zap.String("path", request.URL.Path),
				zap.Int("status", response.Status),
				zap.Duration("duration", time.Since(startedAt)),
			)
			return nil
		}
	}
}

func (server Server) handleRoot(echoContext echo.Context) error {
	return echoContext.NoContent(http.StatusOK)
}

func (server Server) handleHealth(echoContext echo.Context) error {
	return echoContext.JSON(http.StatusOK, map[string]string{statusFieldName: statusHealthy})
}

func (server Server) handleCapabilities(echoContext echo.Context) error {
	payload := struct {
		Capabilities []Capability `json:"capabilities"`
	}{Capabilities: server.config.Capabilities}
	return echoContext.JSON(http.StatusOK, payload)
}

func (server Server) handleCommand(echoContext echo.Context) error {
	commandName := echoContext.Param(commandNameParameter)
	executor, found := server.config.Executors[commandName]
	if !found {
		return echoContext.JSON(http.StatusNotFound, map[string]string{errorFieldName: errorCommandNotFound})
	}
	if !strings.HasPrefix(echoContext.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return echoContext.JSON(http.StatusUnsupportedMediaType, map[string]string{errorFieldName: errorJSONRequired})
	}
	body, readErr := io.ReadAll(echoContext.Request().Body)
	if readErr != nil {
		return echoContext.JSON(http.StatusBadRequest, map[string]string{errorFieldName: fmt.Sprintf("read request body: %v", readErr)})
	}
	commandResponse, executeErr := executor.Execute(echoContext.Request().Context(), CommandRequest{Payload: json.RawMessage(body)})
	if executeErr != nil {
		return echoContext.JSON(server.statusCodeFromError(executeErr), map[string]string{errorFieldName: executeErr.Error()})
	}
	return echoContext.JSON(http.StatusOK, commandResponse)
}

func (server Server) statusCodeFromError(err error) int {
	var executionError CommandExecutionError
	if errors.As(err, &executionError) {
		return executionError.StatusCode()
	}
	return http.StatusInternalServerError
}
