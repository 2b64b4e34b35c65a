package auth

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"
)

// ログイン中ユーザー自身のプロフィール取得。
type GetProfileUsecase struct {
	userRepo repository.UserRepository
}

// DI
func NewGetProfileUsecase(userRepo repository.UserRepository) *GetProfileUsecase {
	return &GetProfileUsecase{userRepo: userRepo}
}

func (u *GetProfileUsecase) Execute(ctx context.Context, userID int64) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if user == nil {
		// トークンは有効だがユーザーが消えている
		return model.User{}, repository.ErrUserNotFound
	}

	safeUser := *user
	safeUser.PasswordHash = ""
	return safeUser, nil
}
