package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(redact *redactor) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar(), redact: redact}, logs
}

func TestRedactsCredentialsAndHashesUserIDs(t *testing.T) {
	log, logs := observed(&redactor{salt: "pepper"})
	log.With("service", "AuthService").Info("login",
		"email", "sam@stepwise.test",
		"access_token", "abc.def.ghi",
		"user_id", "6f1c",
		"course_id", "c-1",
	)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "AuthService", fields["service"])
	assert.Equal(t, "[REDACTED]", fields["email"])
	assert.Equal(t, "[REDACTED]", fields["access_token"])
	assert.Equal(t, "c-1", fields["course_id"])

	hashed, ok := fields["user_id"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^hash:[0-9a-f]{12}$`, hashed)
	assert.Equal(t, (&redactor{salt: "pepper"}).hash("6f1c"), hashed)
	assert.NotEqual(t, (&redactor{}).hash("6f1c"), hashed)
}

func TestWithKeepsRedaction(t *testing.T) {
	log, logs := observed(&redactor{})
	log.With("password", "hunter2").Warn("bad login")
	assert.Equal(t, "[REDACTED]", logs.All()[0].ContextMap()["password"])
}

func TestRedactionDisabledPassesThrough(t *testing.T) {
	log, logs := observed(nil)
	log.Info("x", "email", "sam@stepwise.test", "user_id", "6f1c")
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "sam@stepwise.test", fields["email"])
	assert.Equal(t, "6f1c", fields["user_id"])
}

func TestNewHonoursRedactionEnv(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "false")
	l, err := New("test")
	require.NoError(t, err)
	assert.Nil(t, l.redact)

	t.Setenv("LOG_REDACTION_ENABLED", "")
	l, err = New("test")
	require.NoError(t, err)
	assert.NotNil(t, l.redact)
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() { Nop().With("k", "v").Error("ignored", "token", "x") })
}
