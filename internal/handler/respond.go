package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"budgetmate/internal/pkg"
)

// Error bodies use "msg" on feed and ledger routes and "message" on account and catalog routes.
const (
	msgKey     = "msg"
	messageKey = "message"
)

// fail maps err to its status and writes {key: message}. Internal errors are logged, not echoed.
func fail(c *gin.Context, log *slog.Logger, key string, err error) {
	status := pkg.HTTPStatus(err)
	if status >= 500 {
		log.Error("request failed", "method", c.Request.Method, "route", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{key: pkg.Message(err)})
}

var errBadBody = pkg.Validation("Invalid request body")

// bind decodes the JSON body; an empty body leaves req untouched.
func bind(c *gin.Context, req any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(req); err != nil {
		return errBadBody
	}
	return nil
}

func pathID(c *gin.Context, name, what string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, pkg.Validation("invalid " + what + " id")
	}
	return id, nil
}

// isoTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
type isoTime struct {
	time.Time
}

func (t *isoTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return pkg.Validation("Date must be a valid date")
}

func (t *isoTime) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
