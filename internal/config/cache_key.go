package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a student's active login JTI.
func (r *CacheKeyStruct) UserSessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("login:%s", userID)
}

// ExamPaperKey returns the cache key for a published exam's student-facing paper.
func (r *CacheKeyStruct) ExamPaperKey(examID uuid.UUID) string {
	return fmt.Sprintf("exam:%s:paper", examID)
}

// ExamMonitorChannel returns the Redis PubSub channel for attempt progress
// events on an exam.
func (r *CacheKeyStruct) ExamMonitorChannel(examID uuid.UUID) string {
	return fmt.Sprintf("exam:%s:monitor", examID)
}

var CacheKey = NewCacheKeyStruct()
