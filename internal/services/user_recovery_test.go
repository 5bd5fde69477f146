package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func recoveryUser(code string, sentAt time.Time) *models.User {
	return &models.User{
		ID:                 1,
		Email:              "seller@example.com",
		Status:             models.StatusActive,
		RecoveryCode:       strPtr(code),
		RecoveryCodeSentAt: &sentAt,
	}
}

func TestGenerateRecoveryCode(t *testing.T) {
	code, err := GenerateRecoveryCode()
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "code must be numeric")
	}
}

func TestVerifyRecoveryCode(t *testing.T) {
	tests := []struct {
		name  string
		user  *models.User
		code  string
		valid bool
	}{
		{
			name:  "valid code within window",
			user:  recoveryUser("123456", time.Now().Add(-5*time.Minute)),
			code:  "123456",
			valid: true,
		},
		{
			name:  "code mismatch",
			user:  recoveryUser("123456", time.Now().Add(-5*time.Minute)),
			code:  "654321",
			valid: false,
		},
		{
			name:  "expired code",
			user:  recoveryUser("123456", time.Now().Add(-20*time.Minute)),
			code:  "123456",
			valid: false,
		},
		{
			name:  "no code on record",
			user:  &models.User{ID: 1, Email: "seller@example.com"},
			code:  "123456",
			valid: false,
		},
		{
			name:  "whitespace around code is ignored",
			user:  recoveryUser("123456", time.Now().Add(-5*time.Minute)),
			code:  " 123456 ",
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{
				mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
					return tt.user, nil
				},
			}
			service := NewUserService(repo, nil, nil, nil)

			valid, err := service.VerifyRecoveryCode(context.Background(), "seller@example.com", tt.code)
			assert.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestVerifyRecoveryCode_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewUserService(repo, nil, nil, nil)

	// Whether the account exists is never revealed
	valid, err := service.VerifyRecoveryCode(context.Background(), "nobody@example.com", "123456")
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestUpdatePasswordWithCode_InvalidCode(t *testing.T) {
	updated := false
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return recoveryUser("123456", time.Now().Add(-5*time.Minute)), nil
		},
		mockUpdate: func(ctx context.Context, user *models.User) error {
			updated = true
			return nil
		},
	}
	service := NewUserService(repo, nil, nil, nil)

	err := service.UpdatePasswordWithCode(context.Background(), "seller@example.com", "000000", "nueva12345")
	assert.True(t, errors.Is(err, ErrInvalidRecoveryCode))
	assert.False(t, updated)
}

func TestUpdatePasswordWithCode_Success(t *testing.T) {
	user := recoveryUser("123456", time.Now().Add(-5*time.Minute))
	var saved *models.User
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		mockUpdate: func(ctx context.Context, u *models.User) error {
			saved = u
			return nil
		},
	}
	service := NewUserService(repo, nil, nil, nil)

	err := service.UpdatePasswordWithCode(context.Background(), "seller@example.com", "123456", "nueva12345")
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.True(t, VerifyPassword("nueva12345", saved.EncryptedPassword))
	assert.Nil(t, saved.RecoveryCode, "the code is single-use")
	assert.Nil(t, saved.RecoveryCodeSentAt)
}
