package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/Sathishnaik786/Zekto/pkg/auth"
	"github.com/Sathishnaik786/Zekto/pkg/auth/session"
	"github.com/Sathishnaik786/Zekto/pkg/config"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
)

type stubRotator struct {
	newAccessID string
	newToken    string
	rotateErr   error
	revokeErr   error

	rotatedFrom string
	provided    string
	revoked     []string
}

func (s *stubRotator) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	s.rotatedFrom = oldAccessID
	s.provided = provided
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return s.newAccessID, s.newToken, nil
}

func (s *stubRotator) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return s.revokeErr
}

func sessionTestConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "zekto-test", ExpirationMinutes: 60}
}

func mintSessionToken(t *testing.T, cfg config.JWTConfig, issued time.Time, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, issued, pkgauth.AccessTokenPayload{
		UserID:      uuid.New(),
		Role:        enums.UserRoleCustomer,
		PhoneNumber: "+919876543210",
		JTI:         jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRefreshTokenRotatesSession(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{newAccessID: "jti-new", newToken: "refresh-new"}
	handler := RefreshToken(rotator, cfg, nil)

	// An expired access token must still be accepted here.
	expired := mintSessionToken(t, cfg, time.Now().Add(-48*time.Hour), "jti-old")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{"refreshToken":"refresh-old"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+expired)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	if rotator.rotatedFrom != "jti-old" || rotator.provided != "refresh-old" {
		t.Fatalf("unexpected rotate args %q %q", rotator.rotatedFrom, rotator.provided)
	}

	var envelope struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if envelope.Data.RefreshToken != "refresh-new" {
		t.Fatalf("expected new refresh token got %q", envelope.Data.RefreshToken)
	}

	claims, err := pkgauth.ParseAccessToken(cfg, envelope.Data.AccessToken)
	if err != nil {
		t.Fatalf("parse minted access token: %v", err)
	}
	if claims.ID != "jti-new" {
		t.Fatalf("expected new session id in jti got %q", claims.ID)
	}
	if claims.PhoneNumber != "+919876543210" {
		t.Fatalf("expected phone carried over, got %q", claims.PhoneNumber)
	}
}

func TestRefreshTokenRejectsInvalidRefresh(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
	handler := RefreshToken(rotator, cfg, nil)

	token := mintSessionToken(t, cfg, time.Now(), "jti-1")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{"refreshToken":"stale"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRefreshTokenRequiresBody(t *testing.T) {
	cfg := sessionTestConfig()
	handler := RefreshToken(&stubRotator{}, cfg, nil)

	token := mintSessionToken(t, cfg, time.Now(), "jti-1")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{}
	handler := Logout(rotator, cfg, nil)

	token := mintSessionToken(t, cfg, time.Now(), "jti-9")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	if len(rotator.revoked) != 1 || rotator.revoked[0] != "jti-9" {
		t.Fatalf("expected jti-9 revoked got %v", rotator.revoked)
	}
}

func TestLogoutRequiresCredentials(t *testing.T) {
	cfg := sessionTestConfig()
	handler := Logout(&stubRotator{}, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
