package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/perfval/perfval-backend/api/middleware"
	"github.com/perfval/perfval-backend/internal/auth"
	"github.com/perfval/perfval-backend/internal/users"
	pkgerrors "github.com/perfval/perfval-backend/pkg/errors"
)

type stubAuthService struct {
	login   *auth.LoginResponse
	user    *users.UserDTO
	err     error
	gotUser uuid.UUID
}

func (s *stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Register(_ context.Context, _ auth.RegisterRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Profile(_ context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	s.gotUser = userID
	return s.user, s.err
}

func (s *stubAuthService) UpdateProfile(_ context.Context, userID uuid.UUID, _ auth.UpdateProfileRequest) (*users.UserDTO, error) {
	s.gotUser = userID
	return s.user, s.err
}

func (s *stubAuthService) ChangePassword(_ context.Context, userID uuid.UUID, _ auth.ChangePasswordRequest) error {
	s.gotUser = userID
	return s.err
}

func TestLoginReturnsToken(t *testing.T) {
	stub := &stubAuthService{login: &auth.LoginResponse{
		Message: "Login successful",
		Token:   "signed-token",
		User:    &users.UserDTO{Username: "ada"},
	}}
	handler := Login(stub, nil)

	body := bytes.NewBufferString(`{"username": "ada", "password": "hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var decoded auth.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decoded.Token != "signed-token" {
		t.Fatalf("expected token in response, got %+v", decoded)
	}
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	handler := Login(&stubAuthService{}, nil)

	body := bytes.NewBufferString(`{"username": "ada"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLoginBadCredentialsReturns401(t *testing.T) {
	stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := Login(stub, nil)

	body := bytes.NewBufferString(`{"username": "ada", "password": "wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRegisterReturns201(t *testing.T) {
	stub := &stubAuthService{login: &auth.LoginResponse{Message: "User registered successfully", Token: "t"}}
	handler := Register(stub, nil)

	body := bytes.NewBufferString(`{
		"username": "ada",
		"email": "ada@corp.test",
		"password": "hunter22",
		"firstName": "Ada",
		"lastName": "Lovelace",
		"department": "Engineering"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProfileReadsUserFromContext(t *testing.T) {
	userID := uuid.New()
	stub := &stubAuthService{user: &users.UserDTO{ID: userID, Username: "ada"}}
	handler := Profile(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.gotUser != userID {
		t.Fatalf("expected service called with %s, got %s", userID, stub.gotUser)
	}
}

func TestProfileWithoutContextIs401(t *testing.T) {
	handler := Profile(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestChangePasswordWritesConfirmation(t *testing.T) {
	handler := ChangePassword(&stubAuthService{}, nil)

	body := bytes.NewBufferString(`{"currentPassword": "hunter22", "newPassword": "hunter23"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var decoded map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decoded["message"] != "Password changed successfully" {
		t.Fatalf("unexpected message %q", decoded["message"])
	}
}
