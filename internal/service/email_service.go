package service

import (
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/redis"
)

type EmailService struct {
	cfg   pkg.SMTPConfig
	rRepo *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{
		cfg:   cfg,
		rRepo: &redis.EmailRepository{},
	}
}

// SendCode 生成 6 位验证码，写 redis 后发邮件
func (s *EmailService) SendCode(scope, email string) error {
	if scope != "register" && scope != "reset" {
		return pkg.Validationf("unknown code scope %q", scope)
	}
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.rRepo.SetCode(scope, email, code); err != nil {
		return err
	}
	html := pkg.EmailCodeHTML(scope, code, redis.DefaultEmailCodeTTL)
	return pkg.SendEmail(s.cfg, email, "Verification code", html)
}

// VerifyCode 比对成功即作废，验证码一次性使用
func (s *EmailService) VerifyCode(scope, email, code string) error {
	stored, err := s.rRepo.GetCode(scope, email)
	if err != nil {
		return pkg.Validationf("code expired or not sent")
	}
	if stored != code {
		return pkg.Validationf("wrong verification code")
	}
	return s.rRepo.DeleteCode(scope, email)
}
