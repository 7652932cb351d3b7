package model

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a course students enroll in and doctors teach.
type Course struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Majors      []Major   `json:"majors,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseInclude selects optional associations loaded with a course listing.
// It replaces ad hoc conditional attachment with typed include options.
type CourseInclude struct {
	Majors   bool
	Doctors  bool
	Students bool
}

// CourseDetail is a course plus its requested associations.
type CourseDetail struct {
	Course
	Doctors  []User `json:"doctors,omitempty"`
	Students []User `json:"students,omitempty"`
}

// CreateCourseRequest is the payload for creating a course, optionally
// associating it with majors in the same transaction.
type CreateCourseRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=255"`
	Code        string   `json:"code" binding:"required,min=2,max=20"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	MajorIDs    []string `json:"major_ids" binding:"omitempty,dive,uuid"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=2,max=255"`
	Code        string   `json:"code" binding:"omitempty,min=2,max=20"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	MajorIDs    []string `json:"major_ids" binding:"omitempty,dive,uuid"`
}
