package auth

import (
	"Backend-Results/src/models"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*models.User{}}
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return ErrEmailTaken
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	m.users[user.Email] = &cp
	return nil
}

type memoryOTPs struct {
	mu   sync.Mutex
	otps map[string]models.OTP
}

func newMemoryOTPs() *memoryOTPs {
	return &memoryOTPs{otps: map[string]models.OTP{}}
}

func (m *memoryOTPs) Save(_ context.Context, otp *models.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps[otp.Email] = *otp
	return nil
}

func (m *memoryOTPs) Get(_ context.Context, email string) (*models.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.otps[email]
	if !ok {
		return nil, models.ErrOTPNotFound
	}
	return &o, nil
}

func (m *memoryOTPs) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.otps, email)
	return nil
}

// recordingNotifier เก็บ code ล่าสุดที่ส่งออกไป
type recordingNotifier struct {
	codes []string
	err   error
}

func (n *recordingNotifier) NotifyOTP(_ context.Context, _ string, code string) error {
	n.codes = append(n.codes, code)
	return n.err
}

func (n *recordingNotifier) last() string {
	if len(n.codes) == 0 {
		return ""
	}
	return n.codes[len(n.codes)-1]
}

type memoryGuard struct {
	max         int
	attempts    map[string]int
	blacklisted map[string]time.Duration
}

func newMemoryGuard(max int) *memoryGuard {
	return &memoryGuard{max: max, attempts: map[string]int{}, blacklisted: map[string]time.Duration{}}
}

func (g *memoryGuard) IsRateLimited(_ context.Context, email string) (bool, time.Duration, error) {
	if g.attempts[email] >= g.max {
		return true, 90 * time.Second, nil
	}
	return false, 0, nil
}

func (g *memoryGuard) RecordFailedLogin(_ context.Context, email string) error {
	g.attempts[email]++
	return nil
}

func (g *memoryGuard) ResetLogin(_ context.Context, email string) error {
	delete(g.attempts, email)
	return nil
}

func (g *memoryGuard) BlacklistToken(_ context.Context, token string, ttl time.Duration) error {
	g.blacklisted[token] = ttl
	return nil
}

func (g *memoryGuard) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	_, ok := g.blacklisted[token]
	return ok, nil
}

type stubCaptcha struct {
	ok  bool
	err error
}

func (c stubCaptcha) Verify(context.Context, string, string) (bool, error) {
	return c.ok, c.err
}
