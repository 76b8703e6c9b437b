package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository resolves a login key to the stored hash and identity.
type CredentialRepository interface {
	GetCredentialsByEmail(email string) (passwordHash string, userID int64, err error)
}

// Service performs the authentication business logic: credential check and
// token mint. It keeps no session state.
type Service struct {
	credentials    CredentialRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
}

func NewService(credentials CredentialRepository, tokenGen TokenGenerator) *Service {
	return &Service{
		credentials:    credentials,
		tokenGenerator: tokenGen,
		bcryptCost:     bcrypt.DefaultCost,
	}
}

// Authenticate validates credentials and returns a signed identity token.
// Unknown email and wrong password return the same error so callers cannot
// enumerate accounts.
func (s *Service) Authenticate(dto LoginDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	storedHash, userID, err := s.credentials.GetCredentialsByEmail(dto.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(userID)
	if err != nil {
		return "", err
	}

	return token, nil
}

// ValidateAccessToken verifies a token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
