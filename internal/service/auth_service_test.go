package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/config"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/dto"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/service"
)

type stubOperatorRepo struct {
	operators map[uuid.UUID]*model.Operator
}

func newStubOperatorRepo() *stubOperatorRepo {
	return &stubOperatorRepo{operators: make(map[uuid.UUID]*model.Operator)}
}

func (r *stubOperatorRepo) Create(_ context.Context, o *model.Operator) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.operators[o.ID] = o
	return nil
}

func (r *stubOperatorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Operator, error) {
	o, ok := r.operators[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOperatorRepo) FindByUsername(_ context.Context, username string) (*model.Operator, error) {
	for _, o := range r.operators {
		if o.Username == username {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubOperatorRepo) Update(_ context.Context, o *model.Operator) error {
	r.operators[o.ID] = o
	return nil
}

var _ repository.OperatorRepository = (*stubOperatorRepo)(nil)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    168,
	}
}

func seedOperator(t *testing.T, repo *stubOperatorRepo, username, password, role string, active bool) *model.Operator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	op := &model.Operator{
		ID:           uuid.New(),
		Username:     username,
		Name:         "Operador " + username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, repo.Create(context.Background(), op))
	return op
}

func TestLogin_IssuesTokensWithRoleClaim(t *testing.T) {
	repo := newStubOperatorRepo()
	cfg := authConfig()
	seedOperator(t, repo, "joana", "segredo123", "supervisor", true)
	svc := service.NewAuthService(repo, cfg)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "segredo123"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "supervisor", resp.Operator.Role)

	token, err := jwt.Parse(resp.AccessToken, func(_ *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "joana", claims["username"])
	assert.Equal(t, "supervisor", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubOperatorRepo()
	seedOperator(t, repo, "joana", "segredo123", "cashier", true)
	svc := service.NewAuthService(repo, authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "errada"})
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
	assert.Contains(t, err.Error(), "credenciais inválidas")
}

func TestLogin_UnknownUserSameMessageAsWrongPassword(t *testing.T) {
	svc := service.NewAuthService(newStubOperatorRepo(), authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "fantasma", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciais inválidas")
}

func TestLogin_InactiveOperatorRejected(t *testing.T) {
	repo := newStubOperatorRepo()
	seedOperator(t, repo, "desligado", "segredo123", "cashier", false)
	svc := service.NewAuthService(repo, authConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "desligado", Password: "segredo123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciais inválidas")
}

func TestRefresh_RotatesTokens(t *testing.T) {
	repo := newStubOperatorRepo()
	seedOperator(t, repo, "joana", "segredo123", "cashier", true)
	svc := service.NewAuthService(repo, authConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "segredo123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.Operator.ID, refreshed.Operator.ID)
}

func TestRefresh_DeactivatedOperatorRejected(t *testing.T) {
	repo := newStubOperatorRepo()
	op := seedOperator(t, repo, "joana", "segredo123", "cashier", true)
	svc := service.NewAuthService(repo, authConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "segredo123"})
	require.NoError(t, err)

	op.Active = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inativo")
}

func TestRefresh_GarbageTokenRejected(t *testing.T) {
	svc := service.NewAuthService(newStubOperatorRepo(), authConfig())

	_, err := svc.Refresh(context.Background(), "não-é-um-jwt")
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.KindOf(err))
}
