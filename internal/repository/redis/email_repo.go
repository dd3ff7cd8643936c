package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"
)

var (
	ErrEmailNotFound      = errors.New("email code not found")
	ErrEmailCodeSetFailed = errors.New("email code set failed")
	ErrEmailCodeDelFailed = errors.New("email code delete failed")
)

type EmailRepository struct{}

// SetCode 写入验证码，带 TTL；scope 区分 register/reset
func (e *EmailRepository) SetCode(scope, email, code string) error {
	key := fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
	if err := Client.Set(context.Background(), key, code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrEmailCodeSetFailed
	}
	return nil
}

func (e *EmailRepository) GetCode(scope, email string) (string, error) {
	key := fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
	val, err := Client.Get(context.Background(), key).Result()
	if err != nil {
		return "", ErrEmailNotFound
	}
	return val, nil
}

// DeleteCode 验证通过后删除，幂等
func (e *EmailRepository) DeleteCode(scope, email string) error {
	key := fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
