package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/warbler/internal/model"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
	ErrNotFound      = gorm.ErrRecordNotFound
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, q string) ([]*model.User, error)
	Update(ctx context.Context, u *model.User) error
	// DeleteCascade removes the user together with their messages, their
	// likes, likes on their messages and both directions of follow edges,
	// all in one transaction.
	DeleteCascade(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return translateUnique(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users, or the ones whose username contains q.
// The substring match is case-sensitive. sqlite's LIKE is case-insensitive
// for ASCII, so it gets an instr predicate instead.
func (r *userRepository) List(ctx context.Context, q string) ([]*model.User, error) {
	var res []*model.User
	tx := r.db.WithContext(ctx).Order("id")
	if q != "" {
		if r.db.Dialector.Name() == "sqlite" {
			tx = tx.Where("instr(username, ?) > 0", q)
		} else {
			tx = tx.Where("username LIKE ?", "%"+q+"%")
		}
	}
	err := tx.Find(&res).Error
	return res, err
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	return translateUnique(r.db.WithContext(ctx).Save(u).Error)
}

func (r *userRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_liked_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("msg_id IN (?)",
			tx.Model(&model.Message{}).Select("id").Where("user_id = ?", id),
		).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}

// translateUnique maps driver-level unique violations onto the repository
// sentinels so callers can tell which column collided.
func translateUnique(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	unique := errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
	if !unique {
		return err
	}
	if strings.Contains(msg, "email") {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
