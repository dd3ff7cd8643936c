package mysql

import (
	"errors"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	err := r.DB.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkg.ErrConflict
	}
	return err
}

// FindActiveByID 只返回未被停用的账号；软删号对外视为不存在
func (r *UserRepository) FindActiveByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &user, err
}

// FindByID 含软删号，管理端用
func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var usr model.User
	err := r.DB.Where("email = ?", email).First(&usr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &usr, err
}

func (r *UserRepository) UpdatePassword(userID uint64, hashed string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("password", hashed).Error
}

func (r *UserRepository) UpdateProfile(userID uint64, fields map[string]any) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Updates(fields).Error
}

// SetDeleted 软删/恢复开关
func (r *UserRepository) SetDeleted(userID uint64, deleted bool) error {
	res := r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("is_deleted", deleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// Search 按姓名搜索活跃用户，姓名顺序分页
func (r *UserRepository) Search(text string, offset, limit int) ([]model.User, error) {
	var list []model.User
	q := r.DB.Where("is_deleted = ?", false)
	if text != "" {
		like := "%" + text + "%"
		q = q.Where(
			"CONCAT(first_name, ' ', last_name) LIKE ? OR CONCAT(last_name, ' ', first_name) LIKE ?",
			like, like,
		)
	}
	err := q.Order("first_name ASC, id ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}
