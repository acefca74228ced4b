package models

import (
	"strings"
	"time"
)

// User is the identity record held by the credential directory. Email is
// the directory key and is stored in normalized form; ID and CreatedAt
// are set once at registration and never change.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	FullName       string
	Role           string
	CollegeName    string
	GraduationYear string
	Skills         []string
	LinkedinURL    string
	GithubURL      string
	IsActive       bool
	CreatedAt      time.Time
}

// PublicUser is the read-only projection handed to transports and
// downstream readers. It never carries the password hash.
type PublicUser struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	CollegeName    string    `json:"college_name,omitempty"`
	GraduationYear string    `json:"graduation_year,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	LinkedinURL    string    `json:"linkedin_url,omitempty"`
	GithubURL      string    `json:"github_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Public returns the projection of the record without the password hash.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		CollegeName:    u.CollegeName,
		GraduationYear: u.GraduationYear,
		Skills:         append([]string(nil), u.Skills...),
		LinkedinURL:    u.LinkedinURL,
		GithubURL:      u.GithubURL,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

// Clone returns a deep copy so store internals never alias caller memory.
func (u *User) Clone() *User {
	c := *u
	c.Skills = append([]string(nil), u.Skills...)
	return &c
}

// ProfileUpdate lists the fields a profile edit may change. Nil pointers
// leave the stored value untouched. Identity fields (id, email, password
// hash, created_at) are not updatable through this path.
type ProfileUpdate struct {
	FullName       *string
	CollegeName    *string
	GraduationYear *string
	Skills         *[]string
	LinkedinURL    *string
	GithubURL      *string
}

// NormalizeEmail lowercases and trims an email address. Directory
// uniqueness is defined over this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
