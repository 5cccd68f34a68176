package auth

import (
	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	// Session never carries the remembered password.
	Session  *entity.Session `json:"session"`
	Restored bool            `json:"restored"`

	Login       store.Status      `json:"login"`
	LoginFields map[string]string `json:"login_fields,omitempty"`

	Forgot       store.Status      `json:"forgot"`
	ForgotFields map[string]string `json:"forgot_fields,omitempty"`

	Reset       store.Status      `json:"reset"`
	ResetFields map[string]string `json:"reset_fields,omitempty"`
}

func loginStarted(s State) State {
	s.Login = s.Login.Start()
	s.LoginFields = nil
	return s
}

func loginFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Login = store.Status{}
		s.LoginFields = fields
		return s
	}
}

func loginSucceeded(session *entity.Session) func(State) State {
	return func(s State) State {
		s.Session = session
		s.Login = s.Login.Succeed()
		return s
	}
}

func loginFailed(msg string) func(State) State {
	return func(s State) State {
		s.Login = s.Login.Fail(msg)
		return s
	}
}

// sessionReplaced mirrors the repository after any change.
func sessionReplaced(session *entity.Session) func(State) State {
	return func(s State) State {
		s.Session = session
		s.Restored = true
		return s
	}
}

func forgotStarted(s State) State {
	s.Forgot = s.Forgot.Start()
	s.ForgotFields = nil
	return s
}

func forgotFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Forgot = store.Status{}
		s.ForgotFields = fields
		return s
	}
}

func forgotDone(errMsg string) func(State) State {
	return func(s State) State {
		if errMsg != "" {
			s.Forgot = s.Forgot.Fail(errMsg)
		} else {
			s.Forgot = s.Forgot.Succeed()
		}
		return s
	}
}

func resetStarted(s State) State {
	s.Reset = s.Reset.Start()
	s.ResetFields = nil
	return s
}

func resetFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Reset = store.Status{}
		s.ResetFields = fields
		return s
	}
}

func resetDone(errMsg string) func(State) State {
	return func(s State) State {
		if errMsg != "" {
			s.Reset = s.Reset.Fail(errMsg)
		} else {
			s.Reset = s.Reset.Succeed()
		}
		return s
	}
}
