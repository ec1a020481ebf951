package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*domain.Member, error)
	loginFn      func(ctx context.Context, email, password string) (string, *domain.Member, error)
	requestOTPFn func(ctx context.Context, phone string) error
	loginPhoneFn func(ctx context.Context, phone, code string) (string, *domain.Member, error)
	resolveFn    func(ctx context.Context, memberID string) (*domain.Member, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Member, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) RequestOTP(ctx context.Context, phone string) error {
	return s.requestOTPFn(ctx, phone)
}

func (s *stubAuthService) LoginPhone(ctx context.Context, phone, code string) (string, *domain.Member, error) {
	return s.loginPhoneFn(ctx, phone, code)
}

func (s *stubAuthService) Resolve(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.resolveFn(ctx, memberID)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
			if in.Name != "Amara Osei" || in.Email != "amara@choir.test" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Member{ID: "m1", Name: in.Name, Email: in.Email, Role: domain.RoleSinger, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Amara Osei","email":"amara@choir.test","password":"chorister1"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	member, ok := resp["member"].(map[string]any)
	if !ok {
		t.Fatalf("expected member in response: %+v", resp)
	}
	if member["role"] != "singer" {
		t.Fatalf("expected singer role, got %v", member["role"])
	}
}

func TestAuthHandler_Register_MemberExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
			return nil, domain.ErrMemberExists
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Amara Osei","email":"amara@choir.test","password":"chorister1"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/register", body)

	err := h.Register(c)
	if !errors.Is(err, domain.ErrMemberExists) {
		t.Fatalf("expected ErrMemberExists, got %v", err)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Amara Osei","email":"amara@choir.test","password":"short"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/register", body)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/register", "not-json")

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Member, error) {
			if email != "amara@choir.test" || password != "chorister1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Member{ID: "m1", Name: "Amara Osei", Role: domain.RoleSecretary, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"email":"amara@choir.test","password":"chorister1"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login", body)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Member, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	body := `{"email":"amara@choir.test","password":"wrong-pass"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/login", body)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InactiveAccount(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Member, error) {
			return "", nil, domain.ErrAccountInactive
		},
	}
	h := NewAuthHandler(stub)

	body := `{"email":"amara@choir.test","password":"chorister1"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/login", body)

	if err := h.Login(c); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAuthHandler_RequestOTP_AlwaysAccepted(t *testing.T) {
	called := false
	stub := &stubAuthService{
		requestOTPFn: func(ctx context.Context, phone string) error {
			called = true
			if phone != "+233201234567" {
				t.Fatalf("unexpected phone: %s", phone)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"phone":"+233201234567"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/otp/request", body)

	if err := h.RequestOTP(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}

func TestAuthHandler_LoginPhone_Success(t *testing.T) {
	stub := &stubAuthService{
		loginPhoneFn: func(ctx context.Context, phone, code string) (string, *domain.Member, error) {
			if code != "482913" {
				t.Fatalf("unexpected code: %s", code)
			}
			return "phone-token", &domain.Member{ID: "m2", Role: domain.RoleSinger, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"phone":"+233201234567","code":"482913"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/otp/login", body)

	if err := h.LoginPhone(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_LoginPhone_BadCode(t *testing.T) {
	stub := &stubAuthService{
		loginPhoneFn: func(ctx context.Context, phone, code string) (string, *domain.Member, error) {
			return "", nil, domain.ErrInvalidOTP
		},
	}
	h := NewAuthHandler(stub)

	body := `{"phone":"+233201234567","code":"000000"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/otp/login", body)

	if err := h.LoginPhone(c); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}
