package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	StatusPending       ReportStatus = "Pending"
	StatusInvestigating ReportStatus = "Investigating"
	StatusResolved      ReportStatus = "Resolved"
)

type ReportCategory string

const (
	CategorySafety         ReportCategory = "Safety"
	CategoryBullying       ReportCategory = "Bullying"
	CategoryInfrastructure ReportCategory = "Infrastructure"
	CategoryAcademic       ReportCategory = "Academic"
	CategoryBehavioral     ReportCategory = "Behavioral"
	CategoryOther          ReportCategory = "Other"
)

var ReportCategories = []ReportCategory{
	CategorySafety, CategoryBullying, CategoryInfrastructure,
	CategoryAcademic, CategoryBehavioral, CategoryOther,
}

type ReportPriority string

const (
	PriorityLow      ReportPriority = "Low"
	PriorityMedium   ReportPriority = "Medium"
	PriorityHigh     ReportPriority = "High"
	PriorityCritical ReportPriority = "Critical"
)

var ReportPriorities = []ReportPriority{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical,
}

func IsValidReportCategory(c ReportCategory) bool {
	for _, v := range ReportCategories {
		if v == c {
			return true
		}
	}
	return false
}

func IsValidReportPriority(p ReportPriority) bool {
	for _, v := range ReportPriorities {
		if v == p {
			return true
		}
	}
	return false
}

func IsValidReportStatus(s ReportStatus) bool {
	return s == StatusPending || s == StatusInvestigating || s == StatusResolved
}

// GeoPoint is an optional reporter-supplied location fix.
type GeoPoint struct {
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// Resolution records who resolved a report, when, and with what description.
// Written once on the first resolve; later resolves leave it untouched.
type Resolution struct {
	ResolvedByID string    `json:"resolvedById"`
	Description  string    `json:"description"`
	ResolvedAt   time.Time `json:"resolvedAt"`
}

type ReportComment struct {
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Report struct {
	ID          string                      `json:"id" gorm:"primaryKey;size:24"`
	Title       string                      `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description string                      `json:"description" gorm:"type:text;not null" validate:"required"`
	Location    string                      `json:"location" gorm:"not null;size:300" validate:"required"`
	ImageURL    *string                     `json:"imageUrl,omitempty" gorm:"size:500"`
	Category    ReportCategory              `json:"category" gorm:"not null;size:30;index"`
	Priority    ReportPriority              `json:"priority" gorm:"not null;size:10;default:Medium;index"`
	Status      ReportStatus                `json:"status" gorm:"not null;size:20;default:Pending;index"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsAnonymous bool                        `json:"isAnonymous" gorm:"not null;default:false"`
	IsPublic    bool                        `json:"isPublic" gorm:"not null;default:false"`

	ReportedByID string  `json:"reportedById" gorm:"not null;size:24;index"`
	AssignedToID *string `json:"assignedToId,omitempty" gorm:"size:24;index"`

	Geo        *GeoPoint       `json:"geo,omitempty" gorm:"serializer:json;type:jsonb"`
	Resolution *Resolution     `json:"resolution,omitempty" gorm:"serializer:json;type:jsonb"`
	Comments   []ReportComment `json:"comments" gorm:"serializer:json;type:jsonb"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	ReportedBy *User `json:"-" gorm:"foreignKey:ReportedByID"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	return nil
}
