package usecase

import (
	"context"
	"errors"
	"strings"

	"retail/internal/domain/model"
	"retail/internal/logging"
	repo "retail/internal/repository"
)

// usecaseがValidatorInterfaceに依存する約束
type AccountValidator interface {
	ValidateRegister(ctx context.Context, email string, password string, fullName string) error
	ValidateLogin(ctx context.Context, email string, password string) error
	ValidatePassword(password string) error
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
	City     string
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type LoginOutput struct {
	User  model.User  `json:"user"`
	Token AccessToken `json:"token"`
}

// 認証の外側。coreにはユーザーIDとロールだけを渡す
type AuthUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	hasher    PasswordHasher
	issuer    AccessTokenIssuer
	validator AccountValidator
	clock     Clock
}

func NewAuthUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	validator AccountValidator,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		tx:        tx,
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		validator: validator,
		clock:     clock,
	}
}

// メールとパスワードを照合してユーザーを返す
func (u *AuthUsecase) VerifyCredentials(ctx context.Context, email string, secret string) (model.User, error) {
	if err := u.validator.ValidateLogin(ctx, email, secret); err != nil {
		return model.User{}, NewError(KindUnauthorized, "invalid credentials")
	}

	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewError(KindUnauthorized, "invalid credentials")
	}
	if err != nil {
		return model.User{}, persistence(err)
	}

	//パスワード照合
	if !u.hasher.Verify(secret, user.PasswordHash) {
		return model.User{}, NewError(KindUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return model.User{}, NewError(KindForbidden, "user is inactive")
	}
	return user, nil
}

// 照合してアクセストークンを発行
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (LoginOutput, error) {
	user, err := u.VerifyCredentials(ctx, email, password)
	if err != nil {
		return LoginOutput{}, err
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		User: user,
		Token: AccessToken{
			AccessToken: token,
			ExpiresIn:   int(exp.Sub(now).Seconds()),
		},
	}, nil
}

// ユーザーと顧客情報を同じtxで作る
func (u *AuthUsecase) CreateAccount(ctx context.Context, in RegisterInput) (int64, error) {
	if err := u.validator.ValidateRegister(ctx, in.Email, in.Password, in.FullName); err != nil {
		if _, ok := AsError(err); ok {
			return 0, err
		}
		return 0, persistence(err)
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return 0, err
	}

	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.FullName)

	var userID int64
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().Create(ctx, model.User{
			Email:        email,
			PasswordHash: hash,
			FullName:     name,
			Role:         model.RoleCustomer,
			IsActive:     true,
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return NewError(KindConflict, "email already used")
		}
		if err != nil {
			return persistence(err)
		}

		if _, err := r.Customers().Create(ctx, model.Customer{
			UserID:  user.ID,
			Name:    name,
			Email:   email,
			Phone:   strings.TrimSpace(in.Phone),
			Address: strings.TrimSpace(in.Address),
			City:    strings.TrimSpace(in.City),
		}); err != nil {
			return persistence(err)
		}

		userID = user.ID
		return nil
	})
	if err != nil {
		return 0, wrapTxErr(err)
	}

	logging.FromCtx(ctx).Info("account created", "user_id", userID)
	return userID, nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, sess Session, oldPassword string, newPassword string) error {
	if err := sess.requireUser(); err != nil {
		return err
	}
	if err := u.validator.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewError(KindUnauthorized, "unauthorized")
	}
	if err != nil {
		return persistence(err)
	}
	if !u.hasher.Verify(oldPassword, user.PasswordHash) {
		return NewError(KindUnauthorized, "invalid credentials")
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return persistence(err)
	}
	return nil
}

// 管理者が居なければ作る（起動時）
func (u *AuthUsecase) EnsureAdmin(ctx context.Context, email string, password string) error {
	email = normalizeEmail(email)

	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return persistence(err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	_, err = u.users.Create(ctx, model.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         model.RoleAdmin,
		IsActive:     true,
	})
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		return persistence(err)
	}

	logging.FromCtx(ctx).Info("admin user ensured", "email", email)
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
