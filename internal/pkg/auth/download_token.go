package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// downloadTokenType marks a token as a resume-download credential; any other
// type claim is rejected at verification.
const downloadTokenType = "download"

// DownloadClaims scope a signed download token to one professor and one
// application.
type DownloadClaims struct {
	ProfessorID   string `json:"professorId"`
	ApplicationID string `json:"applicationId"`
	TokenType     string `json:"type"`
	jwt.RegisteredClaims
}

// DownloadTokenService issues the signed, professor-and-application-scoped
// tokens embedded in notification emails. Tokens use a secret distinct from
// the auth JWT secret and expire; an expired token never verifies.
type DownloadTokenService struct {
	secret  string
	expiry  time.Duration
	baseURL string
}

// NewDownloadTokenService creates a DownloadTokenService.
func NewDownloadTokenService(secret string, expiry time.Duration, baseURL string) *DownloadTokenService {
	return &DownloadTokenService{
		secret:  secret,
		expiry:  expiry,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateToken issues a signed token for the given professor/application pair.
func (s *DownloadTokenService) GenerateToken(professorID, applicationID string) (string, error) {
	now := time.Now()
	claims := &DownloadClaims{
		ProfessorID:   professorID,
		ApplicationID: applicationID,
		TokenType:     downloadTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign download token: %w", err)
	}
	return token, nil
}

// VerifyToken returns the claims of a valid download token, or nil on any
// failure: bad signature, malformed payload, expiry, or wrong token type.
func (s *DownloadTokenService) VerifyToken(tokenString string) *DownloadClaims {
	token, err := jwt.ParseWithClaims(tokenString, &DownloadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*DownloadClaims)
	if !ok || !token.Valid {
		return nil
	}
	if claims.TokenType != downloadTokenType {
		return nil
	}
	return claims
}

// GenerateDownloadURL composes the public resume-download link for an
// application, with a freshly generated token as query parameter.
func (s *DownloadTokenService) GenerateDownloadURL(professorID, projectID, applicationID string) (string, error) {
	token, err := s.GenerateToken(professorID, applicationID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/projects/%s/applications/%s/resume?token=%s",
		s.baseURL, projectID, applicationID, token), nil
}
