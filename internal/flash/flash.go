package flash

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2/middleware/session"

	"etalase/internal/validation"
	logx "etalase/pkg/logger"
)

// Session keys for the one-shot values. Each value is written by one
// request and consumed by the next rendered page, then cleared.
const (
	keyMessage = "flash.message"
	keyErrors  = "flash.errors"
	keyOld     = "flash.old"
)

// Set stores a flash message in the session, overwriting any prior
// unread value. The caller is responsible for saving the session.
func Set(sess *session.Session, message string) {
	sess.Set(keyMessage, message)
}

// Take returns the session's flash message and clears it. A second
// call before another Set reports absence. Values never cross
// sessions; the session cookie scopes them.
func Take(sess *session.Session) (string, bool) {
	raw := sess.Get(keyMessage)
	if raw == nil {
		return "", false
	}
	sess.Delete(keyMessage)
	message, ok := raw.(string)
	return message, ok && message != ""
}

// SetErrors stores a validation-error mapping for the next form render.
func SetErrors(sess *session.Session, errs validation.Errors) {
	data, err := json.Marshal(errs)
	if err != nil {
		logx.Warn().Err(err).Msg("failed to marshal validation errors for session")
		return
	}
	sess.Set(keyErrors, string(data))
}

// TakeErrors returns and clears the stored validation-error mapping,
// or nil when there is none.
func TakeErrors(sess *session.Session) validation.Errors {
	raw := sess.Get(keyErrors)
	if raw == nil {
		return nil
	}
	sess.Delete(keyErrors)
	encoded, ok := raw.(string)
	if !ok {
		return nil
	}
	var errs validation.Errors
	if err := json.Unmarshal([]byte(encoded), &errs); err != nil {
		logx.Warn().Err(err).Msg("failed to unmarshal validation errors from session")
		return nil
	}
	return errs
}

// SetOld stores the raw submitted input so a failed submission can be
// redisplayed pre-filled.
func SetOld(sess *session.Session, old map[string]string) {
	data, err := json.Marshal(old)
	if err != nil {
		logx.Warn().Err(err).Msg("failed to marshal old input for session")
		return
	}
	sess.Set(keyOld, string(data))
}

// TakeOld returns and clears the stored form input, or nil when there
// is none.
func TakeOld(sess *session.Session) map[string]string {
	raw := sess.Get(keyOld)
	if raw == nil {
		return nil
	}
	sess.Delete(keyOld)
	encoded, ok := raw.(string)
	if !ok {
		return nil
	}
	var old map[string]string
	if err := json.Unmarshal([]byte(encoded), &old); err != nil {
		logx.Warn().Err(err).Msg("failed to unmarshal old input from session")
		return nil
	}
	return old
}
