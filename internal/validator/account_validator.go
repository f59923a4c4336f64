package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"retail/internal/repository"
	"retail/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = usecase.NewError(usecase.KindValidation, "invalid input")

	// emailが既に使用済み
	ErrEmailAlreadyUsed = usecase.NewError(usecase.KindConflict, "email already used")

	ErrPasswordTooShort = usecase.NewError(usecase.KindValidation, "password must be at least 6 characters")

	ErrPasswordTooLong = usecase.NewError(usecase.KindValidation, "password must be at most 72 bytes")
)

const (
	minPasswordLen = 6
	// bcryptが扱える上限
	maxPasswordBytes = 72
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type accountValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAccountValidator(users repository.UserRepository) usecase.AccountValidator {
	return &accountValidator{users: users}
}

// サインアップの入力を検証
func (v *accountValidator) ValidateRegister(ctx context.Context, email string, password string, fullName string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" || strings.TrimSpace(fullName) == "" {
		return ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidInput
	}
	if err := v.ValidatePassword(password); err != nil {
		return err
	}

	// email重複チェック（DBが必要）
	_, err := v.users.FindByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return ErrEmailAlreadyUsed
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// ログインの入力を検証
func (v *accountValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidInput
	}
	return nil
}

// パスワード長（最低文字数とbcryptの上限）
func (v *accountValidator) ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
