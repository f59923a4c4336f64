package usecase

import "retail/internal/domain/model"

// 呼び出し元のユーザー。handlerがJWTのclaimsから作る
type Session struct {
	UserID int64
	Role   model.Role
}

func (s Session) IsStaff() bool {
	return s.Role.IsStaff()
}

func (s Session) requireUser() error {
	if s.UserID <= 0 {
		return NewError(KindUnauthorized, "unauthorized")
	}
	return nil
}

func (s Session) requireStaff() error {
	if err := s.requireUser(); err != nil {
		return err
	}
	if !s.IsStaff() {
		return NewError(KindForbidden, "staff only")
	}
	return nil
}
