package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/models"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
)

type credentialStub struct {
	admins map[string]string
	staff  map[string]string
}

func (c credentialStub) SignInAdmin(username, password string) bool {
	pw, ok := c.admins[username]
	return ok && pw == password
}

func (c credentialStub) SignInStaff(name, password string) bool {
	pw, ok := c.staff[name]
	return ok && pw == password
}

func newAuthServiceForTest() *AuthService {
	accounts := credentialStub{
		admins: map[string]string{"admin": "password"},
		staff:  map[string]string{"Carol": "pw"},
	}
	return NewAuthService(accounts, validator.New(), zap.NewNop(), AuthConfig{Secret: "secret", Expiry: time.Hour, Issuer: "msms"})
}

func TestAuthServiceSignInAdmin(t *testing.T) {
	svc := newAuthServiceForTest()

	res, err := svc.SignIn(models.RoleAdmin, dto.SignInRequest{Username: "admin", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, models.RoleAdmin, res.Role)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Name)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "msms", claims.Issuer)
}

func TestAuthServiceSignInWrongCollection(t *testing.T) {
	svc := newAuthServiceForTest()

	_, err := svc.SignIn(models.RoleStaff, dto.SignInRequest{Username: "admin", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	res, err := svc.SignIn(models.RoleStaff, dto.SignInRequest{Username: "Carol", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, res.Role)
}

func TestAuthServiceSignInValidation(t *testing.T) {
	svc := newAuthServiceForTest()

	_, err := svc.SignIn(models.RoleAdmin, dto.SignInRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	svc := newAuthServiceForTest()
	token, _, err := svc.generateAccessToken("admin", models.RoleAdmin)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	other := NewAuthService(credentialStub{}, nil, nil, AuthConfig{Secret: "other", Expiry: time.Hour})
	foreign, _, err := other.generateAccessToken("admin", models.RoleAdmin)
	require.NoError(t, err)
	_, err = newAuthServiceForTest().ValidateToken(foreign)
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, models.RoleAdmin, role)

	role, ok = ParseRole("staff")
	assert.True(t, ok)
	assert.Equal(t, models.RoleStaff, role)

	_, ok = ParseRole("teacher")
	assert.False(t, ok)
}
