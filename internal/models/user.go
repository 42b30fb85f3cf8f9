package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Branch string

const (
	BranchCSE   Branch = "CSE"
	BranchIT    Branch = "IT"
	BranchECE   Branch = "ECE"
	BranchEEE   Branch = "EEE"
	BranchMech  Branch = "MECH"
	BranchCivil Branch = "CIVIL"
	BranchOther Branch = "OTHER"
)

// UserProfile is the onboarding and profile data of a student. ID is the
// subject of the caller's token.
type UserProfile struct {
	ID             string `json:"id" gorm:"primaryKey;size:255"`
	Name           string `json:"name" gorm:"not null;size:100"`
	Email          string `json:"email" gorm:"index;not null;size:255"`
	GraduationYear int    `json:"graduation_year" gorm:"not null"`
	Branch         Branch `json:"branch" gorm:"size:20"`

	// Target companies
	TargetCompanies datatypes.JSON `json:"target_companies" gorm:"type:jsonb"` // []string

	// Preferences
	WeeklyGoalMinutes int `json:"weekly_goal_minutes" gorm:"default:300"`

	OnboardedAt *time.Time `json:"onboarded_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// Companies decodes TargetCompanies.
func (p *UserProfile) Companies() []string {
	var companies []string
	if len(p.TargetCompanies) == 0 {
		return companies
	}
	_ = json.Unmarshal(p.TargetCompanies, &companies)
	return companies
}

// SetCompanies encodes companies into TargetCompanies.
func (p *UserProfile) SetCompanies(companies []string) error {
	data, err := json.Marshal(companies)
	if err != nil {
		return err
	}
	p.TargetCompanies = datatypes.JSON(data)
	return nil
}

// IsOnboarded reports whether onboarding has been completed.
func (p *UserProfile) IsOnboarded() bool {
	return p.OnboardedAt != nil
}
