package client

import "github.com/jcarver/wellpath/session"

// User is the account behind a session.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResult is the decoded body of a successful password login.
type LoginResult struct {
	Session session.Session `json:"session"`
	User    User            `json:"user"`
}

// Program identifies a health and wellness program.
type Program string

const (
	ProgramRHWP Program = "RHWP"
	ProgramMHWP Program = "MHWP"
)

// FullName returns the human-readable program name.
func (p Program) FullName() string {
	switch p {
	case ProgramRHWP:
		return "Richmond Health And Wellness Program"
	case ProgramMHWP:
		return "Mobile Health And Wellness Program"
	default:
		return string(p)
	}
}

// ParticipantStatus is the enrollment status of a participant.
type ParticipantStatus string

const (
	StatusActive               ParticipantStatus = "Active"
	StatusInactive             ParticipantStatus = "Inactive"
	StatusNoValidContactStatus ParticipantStatus = "NoValidContactStatus"
	StatusDeceased             ParticipantStatus = "Deceases"
	StatusWithdrew             ParticipantStatus = "Withdrew"
)

// Participant is a program participant record.
type Participant struct {
	ID             int               `json:"id"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	PhoneNumberOne string            `json:"phone_number_one"`
	DateOfBirth    string            `json:"date_of_birth"`
	Status         ParticipantStatus `json:"status,omitempty"`
	Program        Program           `json:"program,omitempty"`
}

// HealthInsurance is a coverage category.
type HealthInsurance string

const (
	InsuranceMedicaid HealthInsurance = "Medicaid"
	InsuranceMedicare HealthInsurance = "Medicare"
	InsurancePrivate  HealthInsurance = "Private"
	InsuranceVA       HealthInsurance = "VA"
	InsuranceNone     HealthInsurance = "None"
)

// ParticipantDemographics is the demographics block of a participant.
type ParticipantDemographics struct {
	ParticipantID         int               `json:"participant_id"`
	Age                   *int              `json:"age,omitempty"`
	Ethnicity             *string           `json:"ethnicity,omitempty"`
	IsVeteran             *bool             `json:"is_veteran,omitempty"`
	Language              *string           `json:"language,omitempty"`
	HealthInsurance       []HealthInsurance `json:"health_insurance,omitempty"`
	HighestEducationLevel *string           `json:"highest_education_level,omitempty"`
}

// ParticipantHealthOverview is the health overview block of a participant.
// The misspelled "alergies" field matches the server contract.
type ParticipantHealthOverview struct {
	ParticipantID            int     `json:"participant_id"`
	Allergies                *string `json:"alergies,omitempty"`
	ReportedHealthConditions *string `json:"reported_health_conditions,omitempty"`
	TakesMoreThan5Meds       *bool   `json:"takes_more_than_5_medications,omitempty"`
	HasBloodPressureCuff     *bool   `json:"has_blood_pressure_cuff,omitempty"`
	Height                   *int    `json:"height,omitempty"`
}

// Related wraps per-participant lookups where the server distinguishes
// "participant absent" from failure via a 404 body
// {"participant_exists": false}.
type Related[T any] struct {
	ParticipantExists bool `json:"participant_exists"`
	Data              *T   `json:"data,omitempty"`
}

// RecentVisit is a case-note visit summary.
type RecentVisit struct {
	ID            int    `json:"id"`
	ParticipantID int    `json:"participant_id"`
	DateOfVisit   string `json:"date_of_visit"`
	VisitType     string `json:"visit_type"`
	Location      int    `json:"location"`
}

// ParticipantLookupRequest filters the participant lookup.
type ParticipantLookupRequest struct {
	Program   *string `json:"program,omitempty"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
}

// ParticipantLookupResponse is one lookup match.
type ParticipantLookupResponse struct {
	ID             int     `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	PhoneNumberOne *string `json:"phone_number_one,omitempty"`
	PhoneNumberTwo *string `json:"phone_number_two,omitempty"`
	Program        string  `json:"program"`
	Location       int     `json:"location"`
}

// BloodPressureReading is a single systolic/diastolic measurement.
type BloodPressureReading struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// BloodPressureStats is one visit's blood pressure readings, keyed by
// position ("Sit"/"Stand").
type BloodPressureStats struct {
	CaseNoteID    int                              `json:"case_note_id"`
	DateOfVisit   string                           `json:"date_of_visit"`
	BloodPressure map[string]BloodPressureReading `json:"blood_pressure"`
}

// Positions used as keys in BloodPressureStats.BloodPressure.
const (
	ReadingSit   = "Sit"
	ReadingStand = "Stand"
)

// WeightEntry is one visit's weight measurement.
type WeightEntry struct {
	CaseNoteID  int     `json:"case_note_id"`
	DateOfVisit string  `json:"date_of_visit"`
	Weight      float64 `json:"weight"`
}

// GlucoseEntry is one visit's glucose measurement.
type GlucoseEntry struct {
	CaseNoteID  int     `json:"case_note_id"`
	DateOfVisit string  `json:"date_of_visit"`
	Fasting     *bool   `json:"fasting,omitempty"`
	Result      float64 `json:"result"`
}

// MedicationEntry is one prescribed medication.
type MedicationEntry struct {
	ID                    int     `json:"id"`
	Name                  string  `json:"name"`
	Dosage                string  `json:"dosage"`
	Frequency             string  `json:"frequency"`
	DatePrescribed        *string `json:"date_prescribed,omitempty"`
	DateEnteredIntoSystem string  `json:"date_entered_into_system"`
	IsCurrent             *bool   `json:"is_current,omitempty"`
	Comments              *string `json:"comments,omitempty"`
}

// Goal is a participant goal.
type Goal struct {
	ID            int    `json:"id"`
	IsActive      *bool  `json:"is_active,omitempty"`
	ParticipantID int    `json:"participant_id"`
	Goal          string `json:"goal"`
}

// GoalStep is one step toward a goal.
type GoalStep struct {
	ID                int     `json:"id"`
	GoalID            *int    `json:"goal_id,omitempty"`
	ParticipantID     int     `json:"participant_id"`
	Step              string  `json:"step"`
	ConfidenceLevel   *int    `json:"confidence_level,omitempty"`
	IsComplete        *bool   `json:"is_complete,omitempty"`
	DateSet           *string `json:"date_set,omitempty"`
	DateToBeCompleted *string `json:"date_to_be_completed,omitempty"`
}

// Location is a program site.
type Location struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Program        Program `json:"program"`
	ParentLocation *int    `json:"parent_location,omitempty"`
}

// ResearcherParticipant is one row of a researcher query result.
type ResearcherParticipant struct {
	ParticipantID  int      `json:"participant_id"`
	RedCapID       *int     `json:"red_cap_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	PhoneNumberOne *string  `json:"phone_number_one"`
	PhoneNumberTwo *string  `json:"phone_number_two"`
	OtherContact   *string  `json:"other_contact"`
	VisitHistory   []string `json:"visit_history,omitempty"`
	LastVisited    *string  `json:"last_visited,omitempty"`
}

// SiteInfoFeatures lists server feature switches.
type SiteInfoFeatures struct {
	OpenAPIRoutes      bool `json:"open_api_routes"`
	RedCapReadSyncing  bool `json:"red_cap_read_syncing"`
	RedCapWriteSyncing bool `json:"red_cap_write_syncing"`
	Scalar             bool `json:"scalar"`
	UpdateParticipant  bool `json:"update_participant"`
}

// SiteInfo describes the deployed server build.
type SiteInfo struct {
	Branch     *string          `json:"branch,omitempty"`
	BuildTime  string           `json:"build_time"`
	Commit     *string          `json:"commit,omitempty"`
	CommitTime *string          `json:"commit_time,omitempty"`
	Version    string           `json:"version"`
	Features   SiteInfoFeatures `json:"features"`
}
