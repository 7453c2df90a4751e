package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"unica/config"
	"unica/internal/delivery/http/middleware"
	"unica/internal/delivery/http/router/handler"
	"unica/internal/delivery/http/validator"
	"unica/internal/infra/auth"
	"unica/internal/infra/metrics"
	"unica/internal/infra/persistence/memory"
	"unica/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

type testApp struct {
	e     *echo.Echo
	store *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Token = "test_signing_secret_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:               bcrypt.MinCost,
		MaxConcurrentHashes:      4,
		SessionTokenTTL:          24 * time.Hour,
		ResetTokenTTL:            time.Hour,
		IssueRefreshTokenOnLogin: true,
		ExposeResetToken:         true,
	}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	authUc := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:        memory.NewTransactionManager(store),
		AccountRepo:      memory.NewAccountRepository(store),
		RefreshTokenRepo: memory.NewRefreshTokenRepository(store),
		ResetTokenRepo:   memory.NewResetTokenRepository(store),
		Hasher:           auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost, cfg.Auth.MaxConcurrentHashes),
		TokenService:     tokenService,
		Metrics:          collector,
		Config:           cfg,
		Logger:           logger,
	})
	profileUc := impl.NewProfileService(impl.ProfileServiceParams{
		AccountRepo:   memory.NewAccountRepository(store),
		TwoFactorRepo: memory.NewTwoFactorRepository(store),
		Config:        cfg,
		Logger:        logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUc, profileUc, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenService),
		RateLimiter:    middleware.NewCredentialRateLimiter(cfg),
		Registry:       registry,
	})
	r.RegisterRoutes(e)

	return &testApp{e: e, store: store}
}

func (a *testApp) enable2FA(t *testing.T, id string) {
	t.Helper()

	accountID, err := uuid.Parse(id)
	require.NoError(t, err)
	a.store.EnableTwoFactor(accountID)
}

func (a *testApp) request(t *testing.T, method, path, body, bearer string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec.Code, env
}

func TestEndToEndScenario(t *testing.T) {
	app := newTestApp(t)

	// Register returns 201 with the account and a session token.
	code, env := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"a@x.com","password":"pw1","fullname":"Ann"}`, "")
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)
	t1, _ := env.Data["token"].(string)
	require.NotEmpty(t, t1)
	user, ok := env.Data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "Ann", user["fullname"])

	// Login returns a distinct, also-valid token.
	code, env = app.request(t, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, code)
	t2, _ := env.Data["token"].(string)
	refreshToken, _ := env.Data["refreshToken"].(string)
	require.NotEmpty(t, t2)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, t1, t2)

	// Both tokens are accepted by the profile endpoint.
	code, _ = app.request(t, http.MethodGet, "/auth/profile", "", t1)
	assert.Equal(t, http.StatusOK, code)
	code, env = app.request(t, http.MethodGet, "/auth/profile", "", t2)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "a@x.com", env.Data["email"])

	// Forgot password hands out a reset token in this configuration.
	code, env = app.request(t, http.MethodPost, "/auth/forgot-password",
		`{"email":"a@x.com"}`, "")
	require.Equal(t, http.StatusOK, code)
	resetToken, _ := env.Data["resetToken"].(string)
	require.NotEmpty(t, resetToken)

	// Reset the password, then the old one stops working and the new one works.
	code, _ = app.request(t, http.MethodPost, "/auth/reset-password",
		`{"resetToken":"`+resetToken+`","newPassword":"pw2"}`, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = app.request(t, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"pw1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = app.request(t, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"pw2"}`, "")
	assert.Equal(t, http.StatusOK, code)

	// The reset token was consumed: replaying it is forbidden.
	code, _ = app.request(t, http.MethodPost, "/auth/reset-password",
		`{"resetToken":"`+resetToken+`","newPassword":"pw3"}`, "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	code, env := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"a@x.com","password":"pw1"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)

	code, _ = app.request(t, http.MethodPost, "/auth/register",
		`{"email":"not-an-email","password":"pw1","fullname":"Ann"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	app := newTestApp(t)

	code, _ := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"dup@x.com","password":"pw","fullname":"First"}`, "")
	require.Equal(t, http.StatusCreated, code)

	code, env := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"dup@x.com","password":"pw","fullname":"Second"}`, "")
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", env.Error.Code)
}

func TestLoginFailureShapesMatch(t *testing.T) {
	app := newTestApp(t)

	code, _ := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"real@x.com","password":"right","fullname":"Real"}`, "")
	require.Equal(t, http.StatusCreated, code)

	wrongCode, wrongEnv := app.request(t, http.MethodPost, "/auth/login",
		`{"email":"real@x.com","password":"wrong"}`, "")
	ghostCode, ghostEnv := app.request(t, http.MethodPost, "/auth/login",
		`{"email":"ghost@x.com","password":"whatever"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrongCode)
	assert.Equal(t, http.StatusUnauthorized, ghostCode)
	require.NotNil(t, wrongEnv.Error)
	require.NotNil(t, ghostEnv.Error)
	assert.Equal(t, wrongEnv.Error.Code, ghostEnv.Error.Code)
	assert.Equal(t, wrongEnv.Message, ghostEnv.Message)
}

func TestRefreshTokenEndpoint(t *testing.T) {
	app := newTestApp(t)

	code, _ := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"r@x.com","password":"pw","fullname":"R"}`, "")
	require.Equal(t, http.StatusCreated, code)
	code, env := app.request(t, http.MethodPost, "/auth/login",
		`{"email":"r@x.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, code)
	refreshToken, _ := env.Data["refreshToken"].(string)

	code, env = app.request(t, http.MethodPost, "/auth/refresh-token",
		`{"refreshToken":"`+refreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, code)
	token, _ := env.Data["token"].(string)
	assert.NotEmpty(t, token)

	code, _ = app.request(t, http.MethodPost, "/auth/refresh-token",
		`{"refreshToken":"unknown-value"}`, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = app.request(t, http.MethodPost, "/auth/refresh-token", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestValidateCredentialsEndpoint(t *testing.T) {
	app := newTestApp(t)

	code, _ := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"v@x.com","password":"right","fullname":"V"}`, "")
	require.Equal(t, http.StatusCreated, code)

	code, env := app.request(t, http.MethodPost, "/auth/validate-credentials",
		`{"email":"v@x.com","password":"right"}`, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, env.Data["valid"])

	// A wrong password and an unknown email are both a plain false, not an error.
	code, env = app.request(t, http.MethodPost, "/auth/validate-credentials",
		`{"email":"v@x.com","password":"wrong"}`, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, env.Data["valid"])

	code, env = app.request(t, http.MethodPost, "/auth/validate-credentials",
		`{"email":"ghost@x.com","password":"any"}`, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, env.Data["valid"])
}

func TestBearerGatedEndpoints(t *testing.T) {
	app := newTestApp(t)

	// Missing header is 401, a garbage token is 403.
	code, _ := app.request(t, http.MethodGet, "/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = app.request(t, http.MethodGet, "/auth/profile", "", "garbage-token")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = app.request(t, http.MethodPost, "/auth/register",
		`{"email":"g@x.com","password":"pw","fullname":"G"}`, "")
	require.Equal(t, http.StatusCreated, code)
	_, env := app.request(t, http.MethodPost, "/auth/login",
		`{"email":"g@x.com","password":"pw"}`, "")
	token, _ := env.Data["token"].(string)

	code, env = app.request(t, http.MethodGet, "/auth/2fa", "", token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, env.Data["enabled"])

	code, _ = app.request(t, http.MethodPost, "/auth/logout", "", token)
	assert.Equal(t, http.StatusOK, code)
}

func TestTwoFactorEnabledAccount(t *testing.T) {
	app := newTestApp(t)

	code, env := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"tfa@x.com","password":"pw","fullname":"T"}`, "")
	require.Equal(t, http.StatusCreated, code)
	token, _ := env.Data["token"].(string)

	code, env = app.request(t, http.MethodGet, "/auth/profile", "", token)
	require.Equal(t, http.StatusOK, code)
	accountID := env.Data["id"].(string)

	app.enable2FA(t, accountID)

	code, env = app.request(t, http.MethodGet, "/auth/2fa", "", token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, env.Data["enabled"])
}

func TestHealthAndBanner(t *testing.T) {
	app := newTestApp(t)

	code, env := app.request(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.Data["status"])

	code, _ = app.request(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestMetricsExposition(t *testing.T) {
	app := newTestApp(t)

	code, _ := app.request(t, http.MethodPost, "/auth/register",
		`{"email":"m@x.com","password":"pw","fullname":"M"}`, "")
	require.Equal(t, http.StatusCreated, code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unica_registrations_total")
}
