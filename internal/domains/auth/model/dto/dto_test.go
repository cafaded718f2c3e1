package dto_test

import (
	"resort/infras/jwt"
	"resort/internal/domains/auth/model/dto"
	"resort/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Level(t *testing.T) {
	assert.Equal(t, constant.RoleStaff, (&dto.RegisterRequest{}).Level())
	assert.Equal(t, constant.RoleAdmin, (&dto.RegisterRequest{Role: constant.RoleAdmin}).Level())
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	name := "Ketut Sari"
	req := dto.RegisterRequest{Email: " Ketut@Elysian.test", Role: constant.RoleAdmin, FullName: &name}

	user := req.ToUserModel("u-admin", "hashed", "role-admin")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ketut@elysian.test", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, "role-admin", *user.RoleID)
	assert.Equal(t, constant.RoleAdmin, user.Level)
	assert.Equal(t, &name, user.FullName)
	assert.True(t, user.Active)
	assert.Equal(t, "u-admin", user.CreatedBy)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "guest@example.com", dto.NormalizeEmail("  Guest@Example.COM "))
	assert.Equal(t, "", dto.NormalizeEmail("   "))
}

func TestTokenResponses(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}

	var login dto.LoginResponse
	login.FromTokenPair(pair)

	var refreshed dto.RefreshTokenResponse
	refreshed.FromTokenPair(pair)

	assert.Equal(t, dto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, login)
	assert.Equal(t, dto.RefreshTokenResponse{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, refreshed)
}
