package store

import (
	"context"
	errs "errors"
	"strings"

	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUnknownRole = errs.New("unknown role")

const bcryptCost = 10

// Authenticate returns the user matching username whose password hash
// matches password. Unknown usernames and wrong passwords both report false.
func (s *Store) Authenticate(ctx context.Context, username, password string) (types.User, bool, error) {
	var user types.User
	err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return types.User{}, false, nil
	}
	if err != nil {
		return types.User{}, false, errors.Wrap(err, "Finding user")
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); compareErr != nil {
		return types.User{}, false, nil
	}
	return user, true, nil
}

// Register creates a user. It reports false without writing anything when
// the username is already taken.
func (s *Store) Register(ctx context.Context, username, password, role string) (bool, error) {
	if !types.ValidRole(role) {
		return false, errors.Wrapf(ErrUnknownRole, "registering %q as %q", username, role)
	}

	exists, err := s.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, errors.Wrap(err, "hashing password")
	}

	user := types.User{
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race with another registration for the same name.
		if errs.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "Create user error")
	}
	return true, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&types.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking username")
	}
	return count > 0, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (types.User, error) {
	var user types.User
	err := s.db.WithContext(ctx).Preload("PushSubscriptions").First(&user, "id = ?", id).Error
	return user, errors.Wrap(err, "Finding user")
}

// Students lists every student ordered by username.
func (s *Store) Students(ctx context.Context) ([]types.User, error) {
	ret := []types.User{}
	err := s.db.WithContext(ctx).
		Preload("PushSubscriptions").
		Where("role = ?", types.RoleStudent).
		Order("username").
		Find(&ret).Error
	if err != nil {
		return nil, errors.Wrap(err, "Looking for students")
	}
	return ret, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
