package model

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the user roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleStudent Role = "student"
)

// Gender enumerates recognized gender values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User represents an account. Role-specific data lives in the Profile variant.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Gender       Gender    `json:"gender"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	Profile      Profile   `json:"profile,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the role-specific part of a user. Exactly one variant is set
// for doctors and students; admins carry none.
type Profile interface {
	ProfileRole() Role
}

// StudentProfile carries the student's major affiliation.
type StudentProfile struct {
	UserID  uuid.UUID `json:"-"`
	MajorID uuid.UUID `json:"major_id"`
	Major   *Major    `json:"major,omitempty"`
}

func (StudentProfile) ProfileRole() Role { return RoleStudent }

// DoctorProfile carries the doctor's major and specialization.
type DoctorProfile struct {
	UserID         uuid.UUID `json:"-"`
	MajorID        uuid.UUID `json:"major_id"`
	Specialization string    `json:"specialization"`
	Major          *Major    `json:"major,omitempty"`
}

func (DoctorProfile) ProfileRole() Role { return RoleDoctor }

// AdminProfile is the empty variant for administrators.
type AdminProfile struct{}

func (AdminProfile) ProfileRole() Role { return RoleAdmin }

// CreateUserRequest is the payload for creating a user plus its role profile.
type CreateUserRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=255"`
	Email          string `json:"email" binding:"required,email"`
	Gender         Gender `json:"gender" binding:"required,oneof=male female other"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	Role           Role   `json:"role" binding:"required,oneof=admin doctor student"`
	MajorID        string `json:"major_id" binding:"required_unless=Role admin,omitempty,uuid"`
	Specialization string `json:"specialization" binding:"required_if=Role doctor,omitempty,max=255"`
}

// UpdateUserRequest is the payload for updating a user. Role is accepted for
// shape compatibility with creation but is immutable once a profile row
// exists; sending a different role is rejected.
type UpdateUserRequest struct {
	Role           Role   `json:"role" binding:"omitempty,oneof=admin doctor student"`
	Name           string `json:"name" binding:"omitempty,min=2,max=255"`
	Email          string `json:"email" binding:"omitempty,email"`
	Gender         Gender `json:"gender" binding:"omitempty,oneof=male female other"`
	Password       string `json:"password" binding:"omitempty,min=8,max=128"`
	MajorID        string `json:"major_id" binding:"omitempty,uuid"`
	Specialization string `json:"specialization" binding:"omitempty,max=255"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
