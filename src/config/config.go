package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config ค่าตั้งค่าทั้งหมดของระบบ โหลดครั้งเดียวตอนเริ่มโปรแกรมแล้วส่งต่อให้แต่ละ component
type Config struct {
	Env     string
	Port    string
	Origins string

	Mongo   MongoConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Captcha CaptchaConfig
	SMS     SMSConfig
	OTP     OTPConfig
	Login   LoginConfig
	Upload  UploadConfig
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	URI string
}

// Enabled Redis เป็น optional ใน dev mode
func (r RedisConfig) Enabled() bool {
	return r.URI != ""
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type CaptchaConfig struct {
	SecretKey string
	VerifyURL string
}

// Enabled ถ้าไม่ได้ตั้ง secret จะข้ามการตรวจ CAPTCHA
func (c CaptchaConfig) Enabled() bool {
	return c.SecretKey != ""
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromPhone  string
	AdminPhone string
}

// Enabled true เมื่อมี credentials ของ Twilio ครบ
func (s SMSConfig) Enabled() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.FromPhone != ""
}

type OTPConfig struct {
	TTL time.Duration
}

type LoginConfig struct {
	MaxAttempts int
	Lockout     time.Duration
}

type UploadConfig struct {
	Dir         string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// UseS3 เก็บไฟล์ที่อัปโหลดไว้ใน S3 แทน disk
func (u UploadConfig) UseS3() bool {
	return u.S3Bucket != ""
}

const devJWTSecret = "your_secret_key"

// Load อ่านค่าจาก .env (ถ้ามี) และ environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Warning: No .env file found")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("MONGO_DB", "SchoolResultsDB")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify")
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_LOCKOUT", "15m")
	v.SetDefault("UPLOAD_DIR", "uploads/")
	v.SetDefault("AWS_REGION", "us-east-1")

	return v
}

// FromViper สร้าง Config จาก viper instance ที่เตรียมค่าไว้แล้ว
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:     strings.ToLower(v.GetString("APP_ENV")),
		Port:    v.GetString("APP_PORT"),
		Origins: v.GetString("ALLOWED_ORIGINS"),
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DB"),
		},
		Redis: RedisConfig{URI: v.GetString("REDIS_URI")},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Captcha: CaptchaConfig{
			SecretKey: v.GetString("RECAPTCHA_SECRET_KEY"),
			VerifyURL: v.GetString("RECAPTCHA_VERIFY_URL"),
		},
		SMS: SMSConfig{
			AccountSID: v.GetString("TWILIO_SID"),
			AuthToken:  v.GetString("TWILIO_AUTH_TOKEN"),
			FromPhone:  v.GetString("TWILIO_PHONE"),
			AdminPhone: v.GetString("ADMIN_PHONE"),
		},
		OTP: OTPConfig{TTL: v.GetDuration("OTP_TTL")},
		Login: LoginConfig{
			MaxAttempts: v.GetInt("LOGIN_MAX_ATTEMPTS"),
			Lockout:     v.GetDuration("LOGIN_LOCKOUT"),
		},
		Upload: UploadConfig{
			Dir:         v.GetString("UPLOAD_DIR"),
			S3Bucket:    v.GetString("UPLOAD_S3_BUCKET"),
			S3Region:    v.GetString("AWS_REGION"),
			S3Endpoint:  v.GetString("S3_ENDPOINT"),
			S3AccessKey: v.GetString("S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("S3_SECRET_KEY"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI environment variable not set")
	}
	if cfg.JWT.Secret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET environment variable not set")
		}
		cfg.JWT.Secret = devJWTSecret // fallback for development
	}
	if cfg.OTP.TTL <= 0 {
		return nil, fmt.Errorf("invalid OTP_TTL: %s", cfg.OTP.TTL)
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL: %s", cfg.JWT.TTL)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}
