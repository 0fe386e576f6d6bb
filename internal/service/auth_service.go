package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/config"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	operators repository.OperatorRepository
	cfg       *config.Config
}

func NewAuthService(operators repository.OperatorRepository, cfg *config.Config) AuthService {
	return &authService{operators: operators, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	op, err := s.operators.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fault.Validationf("credenciais inválidas")
	}
	if !op.Active {
		return nil, fault.Validationf("credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fault.Validationf("credenciais inválidas")
	}
	return s.issueTokens(op)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fault.Validationf("refresh token inválido ou expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fault.Validationf("token mal formado")
	}
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, fault.Validationf("token mal formado")
	}
	uid, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fault.Validationf("token mal formado")
	}

	op, err := s.operators.FindByID(ctx, uid)
	if err != nil || !op.Active {
		return nil, fault.Validationf("operador não encontrado ou inativo")
	}
	return s.issueTokens(op)
}

func (s *authService) issueTokens(op *model.Operator) (*dto.LoginResponse, error) {
	access, err := s.generateToken(op, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(op, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Operator: dto.OperatorResponse{
			ID:       op.ID.String(),
			Username: op.Username,
			Name:     op.Name,
			Role:     op.Role,
			Terminal: op.Terminal,
		},
	}, nil
}

func (s *authService) generateToken(op *model.Operator, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  op.ID.String(),
		"username": op.Username,
		"role":     op.Role,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	if op.Terminal != nil {
		claims["terminal"] = *op.Terminal
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
