package service

import (
	"context"
	"mime/multipart"
	"strings"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo      *mysql.UserRepository
	rUser     *redis.UserRepository
	emailSvc  *EmailService
	followSvc *FollowService
	storage   *pkg.FileStorage
}

func NewUserService(db *gorm.DB, emailSvc *EmailService, storage *pkg.FileStorage) *UserService {
	return &UserService{
		repo:      &mysql.UserRepository{DB: db},
		rUser:     &redis.UserRepository{},
		emailSvc:  emailSvc,
		followSvc: NewFollowService(db),
		storage:   storage,
	}
}

func (s *UserService) Register(username, password, email, code string) error {
	if username == "" || password == "" || email == "" {
		return pkg.Validationf("username, password and email required")
	}
	if err := s.emailSvc.VerifyCode("register", email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	return s.repo.Create(user)
}

// Login 软删号不能登录
func (s *UserService) Login(username, password string) (*pkg.TokenPair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, pkg.ErrNotFound
	}
	if user.IsDeleted {
		return nil, pkg.ErrForbidden
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, pkg.Validationf("invalid password")
	}

	token, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	// 单端登录：新 token 顶掉旧的
	if err := s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.rUser.DeleteUserToken(userID)
}

// Refresh 换发 token 对；新 access 写回 redis，旧的随之失效
func (s *UserService) Refresh(refreshToken string) (*pkg.TokenPair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := s.rUser.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindActiveByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return pkg.Validationf("invalid password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(userID, string(hash))
}

// ResetPassword 凭邮箱验证码重置
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	if err := s.emailSvc.VerifyCode("reset", email, code); err != nil {
		return err
	}
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user.ID, string(hash))
}

type ProfileUpdate struct {
	FirstName string
	LastName  string
	Bio       string
	IsPrivate bool
	// RemoveAvatar 为 true 且没传新头像时恢复默认头像
	RemoveAvatar bool
}

// UpdateProfile 资料编辑。私密改公开时触发级联：
// 所有 Pending 的入站关注请求一次性转 Accepted。
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate, avatar *multipart.FileHeader) error {
	user, err := s.repo.FindActiveByID(userID)
	if err != nil {
		return err
	}

	fields := map[string]any{
		"first_name": strings.TrimSpace(update.FirstName),
		"last_name":  strings.TrimSpace(update.LastName),
		"bio":        strings.TrimSpace(update.Bio),
		"is_private": update.IsPrivate,
	}

	if avatar != nil && avatar.Size > 0 {
		path, err := s.storage.Save(avatar, "profiles", pkg.ImageExtensions)
		if err != nil {
			return err
		}
		_ = s.storage.Remove(user.AvatarPath)
		fields["avatar_path"] = path
	} else if update.RemoveAvatar {
		_ = s.storage.Remove(user.AvatarPath)
		fields["avatar_path"] = ""
	}

	if err := s.repo.UpdateProfile(userID, fields); err != nil {
		return err
	}

	if user.IsPrivate && !update.IsPrivate {
		if _, err := s.followSvc.OnAccountBecomesPublic(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// Deactivate 管理员软删账号；不能停用自己。顺带踢掉登录态。
func (s *UserService) Deactivate(actor Actor, targetID uint64) error {
	if !actor.Admin {
		return pkg.ErrForbidden
	}
	if actor.ID == targetID {
		return pkg.Validationf("cannot deactivate your own account")
	}
	if err := s.repo.SetDeleted(targetID, true); err != nil {
		return err
	}
	return s.rUser.DeleteUserToken(targetID)
}

// Reactivate 管理员恢复账号
func (s *UserService) Reactivate(actor Actor, targetID uint64) error {
	if !actor.Admin {
		return pkg.ErrForbidden
	}
	if actor.ID == targetID {
		return pkg.Validationf("cannot reactivate your own account")
	}
	return s.repo.SetDeleted(targetID, false)
}

func (s *UserService) GetActive(userID uint64) (*model.User, error) {
	return s.repo.FindActiveByID(userID)
}

func (s *UserService) Search(text string, page, size int) ([]model.User, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.Search(strings.TrimSpace(text), (page-1)*size, size)
}
