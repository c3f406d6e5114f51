package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// LocalSubject is the subject of tokens minted for the local UI client.
const LocalSubject = "local-ui"

// TokenService issues and resolves control API bearer tokens.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// GetSubject validates token and returns its subject.
func (s *TokenService) GetSubject(_ context.Context, token string) (string, error) {
	subject, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return "", err
	}
	return subject, nil
}

// IssueToFile mints a token for subject and writes it to path, readable by
// the owner only.
func (s *TokenService) IssueToFile(subject, path string) error {
	token, err := s.manager.GenerateAccessToken(subject)
	if err != nil {
		return fmt.Errorf("issue access: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restrict token file: %w", err)
	}

	s.logger.Info("Token service: control API token written", "path", path, "subject", subject)
	return nil
}
