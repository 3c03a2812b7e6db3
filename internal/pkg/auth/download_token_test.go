package auth

import (
	"strings"
	"testing"
	"time"
)

func TestDownloadTokenRoundTrip(t *testing.T) {
	service := NewDownloadTokenService("download-secret", time.Hour, "http://localhost:8080/api/v1")

	token, err := service.GenerateToken("prof-1", "app-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims := service.VerifyToken(token)
	if claims == nil {
		t.Fatal("expected valid claims")
	}
	if claims.ProfessorID != "prof-1" || claims.ApplicationID != "app-1" {
		t.Errorf("claims = %+v, want prof-1/app-1", claims)
	}
}

func TestDownloadTokenExpiryEnforced(t *testing.T) {
	service := NewDownloadTokenService("download-secret", -time.Minute, "http://localhost:8080/api/v1")

	token, err := service.GenerateToken("prof-1", "app-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if claims := service.VerifyToken(token); claims != nil {
		t.Error("expired token should not verify")
	}
}

func TestDownloadTokenWrongSecret(t *testing.T) {
	issuer := NewDownloadTokenService("download-secret", time.Hour, "http://localhost:8080/api/v1")
	verifier := NewDownloadTokenService("other-secret", time.Hour, "http://localhost:8080/api/v1")

	token, err := issuer.GenerateToken("prof-1", "app-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if claims := verifier.VerifyToken(token); claims != nil {
		t.Error("token signed with a different secret should not verify")
	}
}

func TestDownloadTokenRejectsAccessTokens(t *testing.T) {
	downloads := NewDownloadTokenService("shared-secret", time.Hour, "http://localhost:8080/api/v1")

	// An auth access token signed with the same secret must not pass as a
	// download token
	jwtService := NewJWTService(JWTConfig{
		SecretKey:      "shared-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	accessToken, _, err := jwtService.GenerateAccessToken(sampleProfessor())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if claims := downloads.VerifyToken(accessToken); claims != nil {
		t.Error("access token should not verify as a download token")
	}
}

func TestDownloadTokenGarbage(t *testing.T) {
	service := NewDownloadTokenService("download-secret", time.Hour, "http://localhost:8080/api/v1")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if claims := service.VerifyToken(token); claims != nil {
			t.Errorf("garbage token %q should not verify", token)
		}
	}
}

func TestGenerateDownloadURL(t *testing.T) {
	service := NewDownloadTokenService("download-secret", time.Hour, "http://localhost:8080/api/v1/")

	url, err := service.GenerateDownloadURL("prof-1", "proj-1", "app-1")
	if err != nil {
		t.Fatalf("GenerateDownloadURL: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080/api/v1/projects/proj-1/applications/app-1/resume?token=") {
		t.Errorf("unexpected download URL: %s", url)
	}

	token := url[strings.Index(url, "token=")+len("token="):]
	if claims := service.VerifyToken(token); claims == nil || claims.ApplicationID != "app-1" {
		t.Error("embedded token should verify for app-1")
	}
}
