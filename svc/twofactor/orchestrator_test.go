package twofactor_test

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vzoverflow/vzoverflow/pkg/base32"
	"github.com/vzoverflow/vzoverflow/pkg/clock"
	"github.com/vzoverflow/vzoverflow/pkg/totp"
	"github.com/vzoverflow/vzoverflow/svc/twofactor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySubjects is an in-memory SubjectStore double recording state writes.
type memorySubjects struct {
	mu      sync.Mutex
	keys    map[uuid.UUID]string
	enabled map[uuid.UUID]bool
}

func newMemorySubjects() *memorySubjects {
	return &memorySubjects{
		keys:    make(map[uuid.UUID]string),
		enabled: make(map[uuid.UUID]bool),
	}
}

func (m *memorySubjects) SetAuthenticatorKey(_ context.Context, userID uuid.UUID, encryptedKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[userID] = encryptedKey
	return nil
}

func (m *memorySubjects) SetTwoFactorEnabled(_ context.Context, userID uuid.UUID, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled[userID] = enabled
	return nil
}

func (m *memorySubjects) key(userID uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[userID]
}

func (m *memorySubjects) isEnabled(userID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled[userID]
}

type orchestratorFixture struct {
	svc      *twofactor.Service
	subjects *memorySubjects
	sender   *capturingSender
	clk      *clock.Mock
	encKey   []byte
}

func newOrchestrator(t *testing.T) orchestratorFixture {
	t.Helper()

	encKey, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	sender := &capturingSender{}
	clk := clock.NewMock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	codes := twofactor.NewCodeService(
		twofactor.NewMemoryStore(),
		sender,
		twofactor.WithClock(clk),
	)
	subjects := newMemorySubjects()
	svc := twofactor.NewService(codes, subjects, encKey,
		twofactor.WithServiceClock(clk),
	)
	return orchestratorFixture{svc: svc, subjects: subjects, sender: sender, clk: clk, encKey: encKey}
}

// appCode computes the code an authenticator app would currently display for
// the given Base32 secret.
func appCode(t *testing.T, secret string, now time.Time) string {
	t.Helper()
	return totp.GenerateCodeAt(base32.Decode(secret), now)
}

func TestBeginAuthenticatorSetup(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()

	setup, err := fx.svc.BeginAuthenticatorSetup(context.Background(), alice)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z2-7]{32}$`), setup.Secret)
	assert.Equal(t,
		"otpauth://totp/VzOverFlow:alice%40example.com?secret="+setup.Secret+"&issuer=VzOverFlow",
		setup.ProvisioningURI)
	assert.Regexp(t, regexp.MustCompile(`^([A-Z2-7]{4} ){7}[A-Z2-7]{4}$`), setup.ManualEntryKey)

	// The stored key is encrypted, not the raw secret, and round-trips.
	stored := fx.subjects.key(alice.ID)
	require.NotEmpty(t, stored)
	assert.NotEqual(t, setup.Secret, stored)
	decrypted, err := totp.DecryptKey(stored, fx.encKey)
	require.NoError(t, err)
	assert.Equal(t, setup.Secret, decrypted)

	// Enrollment alone must not enable 2FA.
	assert.False(t, fx.subjects.isEnabled(alice.ID))
}

func TestBeginAuthenticatorSetup_RepeatReplacesSecret(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	first, err := fx.svc.BeginAuthenticatorSetup(ctx, alice)
	require.NoError(t, err)
	second, err := fx.svc.BeginAuthenticatorSetup(ctx, alice)
	require.NoError(t, err)

	assert.NotEqual(t, first.Secret, second.Secret)
	decrypted, err := totp.DecryptKey(fx.subjects.key(alice.ID), fx.encKey)
	require.NoError(t, err)
	assert.Equal(t, second.Secret, decrypted, "only the newest secret survives")
}

func TestConfirmAuthenticatorSetup(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	setup, err := fx.svc.BeginAuthenticatorSetup(ctx, alice)
	require.NoError(t, err)
	alice.AuthenticatorKey = fx.subjects.key(alice.ID)

	err = fx.svc.ConfirmAuthenticatorSetup(ctx, alice, appCode(t, setup.Secret, fx.clk.Now()))
	require.NoError(t, err)
	assert.True(t, fx.subjects.isEnabled(alice.ID))
}

func TestConfirmAuthenticatorSetup_WrongCode(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	setup, err := fx.svc.BeginAuthenticatorSetup(ctx, alice)
	require.NoError(t, err)
	alice.AuthenticatorKey = fx.subjects.key(alice.ID)

	wrong := appCode(t, setup.Secret, fx.clk.Now().Add(10*time.Minute))
	err = fx.svc.ConfirmAuthenticatorSetup(ctx, alice, wrong)
	assert.ErrorIs(t, err, twofactor.ErrInvalidCode)
	assert.False(t, fx.subjects.isEnabled(alice.ID), "failed confirmation must not enable 2FA")
}

func TestConfirmAuthenticatorSetup_NoEnrollment(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	err := fx.svc.ConfirmAuthenticatorSetup(context.Background(), subjectAlice(), "123456")
	assert.ErrorIs(t, err, twofactor.ErrMissingAuthenticatorKey)
}

func TestVerify_RoutesToAuthenticator(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	setup, err := fx.svc.BeginAuthenticatorSetup(ctx, alice)
	require.NoError(t, err)
	alice.AuthenticatorKey = fx.subjects.key(alice.ID)
	alice.TwoFactorEnabled = true

	require.NoError(t, fx.svc.Verify(ctx, alice, twofactor.PurposeLogin, appCode(t, setup.Secret, fx.clk.Now())))

	// No email is ever involved on the authenticator path.
	assert.Empty(t, fx.sender.sent)

	err = fx.svc.Verify(ctx, alice, twofactor.PurposeLogin, "000000")
	assert.ErrorIs(t, err, twofactor.ErrInvalidCode)
}

func TestVerify_RoutesToEmailCode(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	alice.TwoFactorEnabled = true // enabled via email flow, no authenticator key
	ctx := context.Background()

	require.NoError(t, fx.svc.RequestEmailCode(ctx, alice, twofactor.PurposeLogin))
	code := extractCode(t, fx.sender.last().BodyHTML)

	require.NoError(t, fx.svc.Verify(ctx, alice, twofactor.PurposeLogin, code))

	// Consumed on success.
	err := fx.svc.Verify(ctx, alice, twofactor.PurposeLogin, code)
	assert.ErrorIs(t, err, twofactor.ErrInvalidCode)
}

func TestVerify_UndecryptableKeyFailsClosed(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	alice.TwoFactorEnabled = true
	// Ciphertext produced under a different key is unreadable here.
	otherKey, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)
	alice.AuthenticatorKey, err = totp.EncryptKey("JBSWY3DPEHPK3PXP", otherKey)
	require.NoError(t, err)

	verifyErr := fx.svc.Verify(context.Background(), alice, twofactor.PurposeLogin, "123456")
	assert.ErrorIs(t, verifyErr, twofactor.ErrInvalidCode)
}

func TestRequestEmailCode_SupersedesOutstanding(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	require.NoError(t, fx.svc.RequestEmailCode(ctx, alice, twofactor.PurposeLogin))
	first := extractCode(t, fx.sender.last().BodyHTML)

	require.NoError(t, fx.svc.RequestEmailCode(ctx, alice, twofactor.PurposeLogin))
	second := extractCode(t, fx.sender.last().BodyHTML)

	if first == second {
		t.Skip("random codes collided; nothing to assert")
	}

	err := fx.svc.Verify(ctx, alice, twofactor.PurposeLogin, first)
	assert.ErrorIs(t, err, twofactor.ErrInvalidCode, "superseded code is dead")
	assert.NoError(t, fx.svc.Verify(ctx, alice, twofactor.PurposeLogin, second))
}

func TestEnableWithEmail(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	require.NoError(t, fx.svc.RequestEmailCode(ctx, alice, twofactor.PurposeEnableTwoFactor))
	code := extractCode(t, fx.sender.last().BodyHTML)

	require.NoError(t, fx.svc.EnableWithEmail(ctx, alice, code))
	assert.True(t, fx.subjects.isEnabled(alice.ID))
}

func TestEnableWithEmail_WrongCode(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	require.NoError(t, fx.svc.RequestEmailCode(ctx, alice, twofactor.PurposeEnableTwoFactor))

	err := fx.svc.EnableWithEmail(ctx, alice, "999999")
	if err == nil {
		t.Skip("random code collided with the guess; nothing to assert")
	}
	assert.ErrorIs(t, err, twofactor.ErrInvalidCode)
	assert.False(t, fx.subjects.isEnabled(alice.ID))
}

func TestDisable_Authenticator(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	setup, err := fx.svc.BeginAuthenticatorSetup(ctx, alice)
	require.NoError(t, err)
	alice.AuthenticatorKey = fx.subjects.key(alice.ID)
	alice.TwoFactorEnabled = true
	fx.subjects.enabled[alice.ID] = true

	require.NoError(t, fx.svc.Disable(ctx, alice, appCode(t, setup.Secret, fx.clk.Now())))

	assert.False(t, fx.subjects.isEnabled(alice.ID))
	assert.Empty(t, fx.subjects.key(alice.ID), "secret is cleared so it can never be replayed")
}

func TestDisable_WrongCodeLeavesStateIntact(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	ctx := context.Background()

	_, err := fx.svc.BeginAuthenticatorSetup(ctx, alice)
	require.NoError(t, err)
	alice.AuthenticatorKey = fx.subjects.key(alice.ID)
	alice.TwoFactorEnabled = true
	fx.subjects.enabled[alice.ID] = true

	err = fx.svc.Disable(ctx, alice, "000000")
	assert.ErrorIs(t, err, twofactor.ErrInvalidCode)
	assert.True(t, fx.subjects.isEnabled(alice.ID))
	assert.NotEmpty(t, fx.subjects.key(alice.ID))
}

func TestDisable_EmailCode(t *testing.T) {
	t.Parallel()

	fx := newOrchestrator(t)
	alice := subjectAlice()
	alice.TwoFactorEnabled = true
	fx.subjects.enabled[alice.ID] = true
	ctx := context.Background()

	require.NoError(t, fx.svc.RequestEmailCode(ctx, alice, twofactor.PurposeDisableTwoFactor))
	code := extractCode(t, fx.sender.last().BodyHTML)

	require.NoError(t, fx.svc.Disable(ctx, alice, code))
	assert.False(t, fx.subjects.isEnabled(alice.ID))
}

// codeInBody matches the code as element text. Anchoring on the tag
// boundaries matters: the stylesheet colors also look like six digits.
var codeInBody = regexp.MustCompile(`>(\d{6})<`)

// extractCode pulls the six-digit code out of a rendered email body.
func extractCode(t *testing.T, body string) string {
	t.Helper()
	match := codeInBody.FindStringSubmatch(body)
	require.NotNil(t, match, "email body must contain a six-digit code")
	return match[1]
}
