package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id missing from context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user_id invalid")
	}
	return id, nil
}

// lockForUpdate takes a row lock on Postgres. sqlite (tests) has no
// FOR UPDATE; its writes are serialized anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// getDatePtr parses a YYYY-MM-DD query param; nil when absent or malformed.
func getDatePtr(c *gin.Context, key string) *time.Time {
	if s := strings.TrimSpace(c.Query(key)); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
	}
	return nil
}

// dayRange turns inclusive calendar dates into a half-open [from, before) pair.
func dayRange(from, to time.Time) (time.Time, time.Time) {
	start := from.Truncate(24 * time.Hour)
	before := to.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return start, before
}
