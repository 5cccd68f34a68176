package auth

import (
	"context"
	"net/url"
	"testing"
	"time"

	"rfp-console/internal/apperror"
	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/testutil"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginResolvesRoleFromUserDetails(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("POST", "/login", testutil.OK(`{"access_token": "t1", "role": null}`)).
		On("GET", "/userdetails", testutil.OK(`[{"id": 4, "email": "x@y.com", "role": "admin"}, {"id": 9, "email": "a@b.com", "role": "reviewer"}]`))

	m := New(h.Deps)
	c := h.Start(t, m)

	var result any
	in := intent.NewLogin("a@b.com", "password123", false)
	in.OnSuccess = func(v any) { result = v }
	c.Dispatch(in)
	c.Drain()

	s, err := h.Sessions.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "a@b.com", s.Email)
	assert.Equal(t, "t1", s.Token)
	assert.Equal(t, entity.RoleReviewer, s.Role)
	assert.Equal(t, 9, s.UserID)

	state := m.State()
	assert.True(t, state.Login.Success)
	assert.True(t, IsAuthenticated(state))
	assert.False(t, IsAdmin(state))
	assert.Equal(t, 9, CurrentUserID(state))
	assert.NotNil(t, result)

	login := h.Backend.CallsTo("POST", "/login")
	require.Len(t, login, 1)
	form, err := url.ParseQuery(string(login[0].Body))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", form.Get("username"))

	details := h.Backend.CallsTo("GET", "/userdetails")
	require.Len(t, details, 1)
	assert.Equal(t, "Bearer t1", details[0].Header.Get("Authorization"))
	assert.Contains(t, h.Messages(), "success:Login successful")
}

func TestLoginSkipsUserDetailsWhenRolePresent(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("POST", "/login", testutil.OK(`{"access_token": "t2", "role": "admin", "user_id": "3"}`))

	m := New(h.Deps)
	c := h.Start(t, m)
	c.Dispatch(intent.NewLogin("boss@b.com", "password123", true))
	c.Drain()

	assert.Empty(t, h.Backend.CallsTo("GET", "/userdetails"))
	assert.True(t, IsAdmin(m.State()))
	assert.Equal(t, "boss@b.com", RememberedEmail(m.State()))

	s, err := h.Sessions.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "password123", s.RememberedPassword)
	assert.Empty(t, m.State().Session.RememberedPassword)
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	h := testutil.New(t)
	m := New(h.Deps)
	c := h.Start(t, m)

	var gotErr error
	in := intent.NewLogin("not-an-email", "", false)
	in.Callbacks = workflow.Callbacks{OnError: func(err error) { gotErr = err }}
	c.Dispatch(in)
	c.Drain()

	assert.Empty(t, h.Backend.Calls())
	assert.True(t, apperror.Is(gotErr, apperror.KindValidation))

	state := m.State()
	assert.Empty(t, state.Login.Error)
	assert.Contains(t, state.LoginFields, "email")
	assert.Contains(t, state.LoginFields, "password")
	assert.Empty(t, h.Messages())
}

func TestLoginFailureSurfacesMessage(t *testing.T) {
	tests := []struct {
		name  string
		reply testutil.Reply
		want  string
	}{
		{"unauthorized", testutil.Status(401, `{}`), apperror.MsgInvalidCredentials},
		{"detail", testutil.Status(400, `{"detail": "Incorrect email or password"}`), "Incorrect email or password"},
		{"server", testutil.Status(503, ``), apperror.MsgServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testutil.New(t)
			h.Backend.On("POST", "/login", tt.reply)
			m := New(h.Deps)
			c := h.Start(t, m)

			c.Dispatch(intent.NewLogin("a@b.com", "password123", false))
			c.Drain()

			assert.Equal(t, tt.want, m.State().Login.Error)
			assert.Equal(t, []string{"error:" + tt.want}, h.Messages())
			assert.False(t, IsAuthenticated(m.State()))
		})
	}
}

func TestLoginUnknownUser(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("POST", "/login", testutil.OK(`{"access_token": "t1"}`)).
		On("GET", "/userdetails", testutil.OK(`[]`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.NewLogin("a@b.com", "password123", false))
	c.Drain()

	assert.Equal(t, "Login failed", m.State().Login.Error)
	s, _ := h.Sessions.Get(context.Background())
	assert.Nil(t, s)
}

func TestLogoutAndWatcher(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("POST", "/logout", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	// A session set elsewhere reaches the slice through the watcher.
	require.Eventually(t, func() bool {
		h.SignIn(t, entity.Session{Email: "a@b.com", Token: "t1", Role: entity.RoleAdmin, UserID: 1})
		return IsAuthenticated(m.State())
	}, time.Second, 20*time.Millisecond)

	c.Dispatch(intent.Logout{})
	c.Drain()

	assert.False(t, IsAuthenticated(m.State()))
	s, err := h.Sessions.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestRestoreSession(t *testing.T) {
	h := testutil.New(t)
	h.SignIn(t, entity.Session{Email: "a@b.com", Token: "t1", Role: entity.RoleReviewer, UserID: 2})
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.RestoreSession{})
	c.Drain()

	state := m.State()
	assert.True(t, state.Restored)
	assert.Equal(t, 2, CurrentUserID(state))
}

func TestForgotAndResetPassword(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("POST", "/forgot-password", testutil.OK(`{"message": "sent"}`)).
		On("POST", "/reset-password", testutil.Status(400, `{"detail": "Token expired"}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.NewForgotPassword("a@b.com"))
	c.Dispatch(intent.NewResetPassword("tok", "password123", "password123"))
	c.Dispatch(intent.NewResetPassword("tok", "password123", "different1"))
	c.Drain()

	state := m.State()
	assert.True(t, state.Forgot.Success)
	assert.Len(t, h.Backend.CallsTo("POST", "/reset-password"), 1)

	var body map[string]string
	h.Backend.CallsTo("POST", "/forgot-password")[0].JSON(t, &body)
	assert.Equal(t, "a@b.com", body["email"])
}
