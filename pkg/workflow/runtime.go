package workflow

import (
	"context"

	"rfp-console/internal/apperror"
	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/session"
)

// Notifier surfaces transient user notifications.
type Notifier interface {
	Success(message string)
	Warning(message string)
	Error(message string)
}

// SessionTerminator destroys the active session.
type SessionTerminator interface {
	ClearWithReason(ctx context.Context, reason string) error
}

// Runtime is the failure/success boundary shared by every handler.
type Runtime struct {
	Sessions SessionTerminator
	Notifier Notifier
	Logger   logger.ILogger
}

// Fail reports err for job. apply receives the extracted message and should
// emit the module's Failure update. Validation errors skip the toast and
// session checks. Auth errors destroy the session whichever module saw them.
func (r *Runtime) Fail(ctx context.Context, job *Job, module string, cb Callbacks, err error, fallback string, apply func(msg string)) string {
	msg := apperror.Message(err, fallback)
	kind := apperror.KindOf(err)

	if kind == apperror.KindAuth && r.Sessions != nil {
		if clearErr := r.Sessions.ClearWithReason(context.WithoutCancel(ctx), session.ReasonUnauthorized); clearErr != nil {
			r.Logger.Error(module, "Failed to clear session after 401", map[string]interface{}{"error": clearErr.Error()})
		}
	}

	if !job.Live() {
		r.Logger.Debug(module, "Dropping failure of superseded job", map[string]interface{}{"kind": string(job.Kind), "job_id": job.ID.String()})
		return msg
	}

	switch kind {
	case apperror.KindValidation:
		r.Logger.Debug(module, "Validation failed", map[string]interface{}{"kind": string(job.Kind), "fields": apperror.FieldsOf(err)})
	case apperror.KindDuplicate:
		r.Logger.Info(module, msg, map[string]interface{}{"kind": string(job.Kind)})
	default:
		r.Logger.Error(module, fallback, map[string]interface{}{"kind": string(job.Kind), "error": err.Error(), "error_kind": kind.String()})
	}

	if apply != nil {
		apply(msg)
	}

	if r.Notifier != nil {
		switch kind {
		case apperror.KindValidation:
		case apperror.KindDuplicate:
			r.Notifier.Warning(msg)
		default:
			r.Notifier.Error(msg)
		}
	}

	cb.Fail(err)
	return msg
}

// Succeed emits the success toast (if any) and calls OnSuccess for live jobs.
func (r *Runtime) Succeed(job *Job, cb Callbacks, toast string, result any) {
	if !job.Live() {
		return
	}
	if toast != "" && r.Notifier != nil {
		r.Notifier.Success(toast)
	}
	cb.Succeed(result)
}
