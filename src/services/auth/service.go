package auth

import (
	"Backend-Results/src/models"
	"Backend-Results/src/services/otp"
	"Backend-Results/src/utils"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// OTPNotifier ส่ง OTP ออกไปนอกระบบ (SMS ไปที่เบอร์ admin)
type OTPNotifier interface {
	NotifyOTP(ctx context.Context, email, code string) error
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin student"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	CaptchaToken string `json:"captchaToken"`
}

type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Deps dependency ของ Service, Captcha เป็น nil ได้ (ปิด CAPTCHA)
type Deps struct {
	Users    UserStore
	OTPs     otp.Store
	Notifier OTPNotifier
	Captcha  CaptchaVerifier
	Guard    SessionGuard
	Tokens   *utils.JWTManager
	OTPTTL   time.Duration
	HashCost int
	Logger   zerolog.Logger
}

type Service struct {
	users    UserStore
	otps     otp.Store
	notifier OTPNotifier
	captcha  CaptchaVerifier
	guard    SessionGuard
	tokens   *utils.JWTManager
	otpTTL   time.Duration
	hashCost int
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(d Deps) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	guard := d.Guard
	if guard == nil {
		guard = NoopGuard{}
	}
	cost := d.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Service{
		users:    d.Users,
		otps:     d.OTPs,
		notifier: d.Notifier,
		captcha:  d.Captcha,
		guard:    guard,
		tokens:   d.Tokens,
		otpTTL:   d.OTPTTL,
		hashCost: cost,
		validate: v,
		log:      d.Logger.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) validateRequest(req interface{}) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return models.NewValidationError(models.InvalidRequest, "%s is required", fe.Field())
		}
		return models.NewValidationError(models.InvalidRequest, "%s is invalid", fe.Field())
	}
	return err
}

// RequestOTP สร้าง OTP ใหม่ทับตัวเดิมของ email นี้แล้วส่ง SMS
// ส่ง SMS ไม่สำเร็จจะแค่ log ไว้ OTP ยังถูกบันทึก
func (s *Service) RequestOTP(ctx context.Context, req OTPRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := s.validateRequest(req); err != nil {
		return err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	record := &models.OTP{Email: req.Email, Code: code, ExpiresAt: s.now().Add(s.otpTTL)}
	if err := s.otps.Save(ctx, record); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}

	if err := s.notifier.NotifyOTP(ctx, req.Email, code); err != nil {
		s.log.Error().Err(err).Str("email", req.Email).Msg("failed to deliver otp sms")
	}
	return nil
}

func (s *Service) verifyOTP(ctx context.Context, email, code string) error {
	invalid := &models.AuthError{Status: http.StatusBadRequest, Message: "Invalid or expired OTP"}

	stored, err := s.otps.Get(ctx, email)
	if models.IsNotFound(err) {
		return invalid
	}
	if err != nil {
		return err
	}
	if stored.Expired(s.now()) || subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) != 1 {
		return invalid
	}
	return nil
}

// Signup สร้างบัญชีใหม่หลังตรวจ OTP แล้ว OTP ที่ใช้ไปจะถูกลบ
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.verifyOTP(ctx, req.Email, req.OTP); err != nil {
		return nil, err
	}

	emailTaken := &models.AuthError{Status: http.StatusBadRequest, Message: "Email already exists"}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, emailTaken
	} else if !models.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, emailTaken
		}
		return nil, err
	}

	if err := s.otps.Delete(ctx, req.Email); err != nil {
		s.log.Warn().Err(err).Str("email", req.Email).Msg("failed to delete used otp")
	}
	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Login ตรวจ CAPTCHA (ถ้าเปิด), rate limit, password แล้วออก JWT
func (s *Service) Login(ctx context.Context, req LoginRequest, remoteIP string) (*LoginResult, error) {
	req.Email = normalizeEmail(req.Email)

	if s.captcha != nil {
		if req.CaptchaToken == "" {
			return nil, &models.AuthError{Status: http.StatusBadRequest, Message: "Captcha token is required"}
		}
		ok, err := s.captcha.Verify(ctx, req.CaptchaToken, remoteIP)
		if err != nil {
			return nil, fmt.Errorf("verify captcha: %w", err)
		}
		if !ok {
			return nil, &models.AuthError{Status: http.StatusBadRequest, Message: "Failed captcha verification"}
		}
	}

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	limited, remaining, err := s.guard.IsRateLimited(ctx, req.Email)
	if err != nil {
		s.log.Warn().Err(err).Msg("rate limit check failed")
	}
	if limited {
		return nil, &models.AuthError{
			Status: http.StatusTooManyRequests,
			Message: fmt.Sprintf("Too many login attempts. Please try again in %d minutes and %d seconds.",
				int(remaining.Minutes()), int(remaining.Seconds())%60),
		}
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if models.IsNotFound(err) {
		s.recordFailure(ctx, req.Email)
		return nil, &models.AuthError{Status: http.StatusNotFound, Message: "User not found"}
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, req.Email)
		return nil, &models.AuthError{Status: http.StatusUnauthorized, Message: "Invalid password"}
	}

	if err := s.guard.ResetLogin(ctx, req.Email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login attempts")
	}

	token, expiresAt, err := s.tokens.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	s.log.Info().Str("email", user.Email).Str("ip", remoteIP).Msg("login successful")
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *Service) recordFailure(ctx context.Context, email string) {
	if err := s.guard.RecordFailedLogin(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login attempt")
	}
}

// Logout blacklist token จนกว่าจะหมดอายุ
func (s *Service) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	return s.guard.BlacklistToken(ctx, token, expiresAt.Sub(s.now()))
}
