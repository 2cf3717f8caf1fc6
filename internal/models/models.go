package models

import (
	"time"
)

const (
	RoleJobSeeker = "Job Seeker"
	RoleEmployer  = "Employer"
)

// StoredFile references an object held by the file-hosting service.
type StoredFile struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type JobChoices struct {
	FirstChoice  string `json:"firstChoice"`
	SecondChoice string `json:"secondChoice"`
	ThirdChoice  string `json:"thirdChoice"`
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"uniqueIndex:idx_users_email_role;not null" json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// The same email may register once per role.
	Role string `gorm:"uniqueIndex:idx_users_email_role;not null" json:"role"`

	PasswordHash string `gorm:"not null" json:"-"`

	JobChoices     JobChoices `gorm:"embedded;embeddedPrefix:choice_" json:"jobChoices"`
	ProfilePicture StoredFile `gorm:"embedded;embeddedPrefix:profile_picture_" json:"profilePicture"`
	Resume         StoredFile `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
}

type Website struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title                    string `gorm:"not null" json:"title"`
	JobType                  string `gorm:"not null" json:"jobType"`
	Location                 string `gorm:"not null" json:"location"`
	CompanyName              string `gorm:"not null" json:"companyName"`
	Introduction             string `gorm:"type:text" json:"introduction"`
	Responsibilities         string `gorm:"type:text" json:"responsibilities"`
	Qualifications           string `gorm:"type:text" json:"qualifications"`
	Offers                   string `gorm:"type:text" json:"offers"`
	Salary                   string `json:"salary"`
	HiringMultipleCandidates string `json:"hiringMultipleCandidates"`
	JobCategory              string `gorm:"not null" json:"jobCategory"`

	Website     Website    `gorm:"embedded;embeddedPrefix:website_" json:"website"`
	CompanyLogo StoredFile `gorm:"embedded;embeddedPrefix:company_logo_" json:"companyLogo"`

	PostedBy uint `gorm:"index;not null" json:"postedBy"`

	// Flipped exactly once by the notification sweep.
	NewslettersSent bool `gorm:"default:false" json:"newsLettersSent"`
}

// JobSeekerInfo is a snapshot of the applicant taken at submission time.
type JobSeekerInfo struct {
	ID      uint       `gorm:"uniqueIndex:idx_applications_job_seeker" json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Phone   string     `json:"phone"`
	Address string     `json:"address"`
	Role    string     `json:"role"`
	Resume  StoredFile `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
}

type EmployerInfo struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

type JobInfo struct {
	JobID    uint   `gorm:"uniqueIndex:idx_applications_job_seeker" json:"jobId"`
	JobTitle string `json:"jobTitle"`
}

// DeletedBy tracks the two-party soft delete. The record is hard-deleted
// once both sides are true.
type DeletedBy struct {
	JobSeeker bool `gorm:"default:false" json:"jobSeeker"`
	Employer  bool `gorm:"default:false" json:"employer"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobSeekerInfo JobSeekerInfo `gorm:"embedded;embeddedPrefix:job_seeker_" json:"jobSeekerInfo"`
	EmployerInfo  EmployerInfo  `gorm:"embedded;embeddedPrefix:employer_" json:"employerInfo"`
	JobInfo       JobInfo       `gorm:"embedded;embeddedPrefix:job_" json:"jobInfo"`
	DeletedBy     DeletedBy     `gorm:"embedded;embeddedPrefix:deleted_by_" json:"deletedBy"`
}
