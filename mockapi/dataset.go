package mockapi

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/jcarver/wellpath/client"
)

// dataset is the in-memory demo data served by the mock API. Everything
// is generated deterministically so tests and demos see stable values.
type dataset struct {
	participants map[int]client.Participant
	demographics map[int]client.ParticipantDemographics
	overviews    map[int]client.ParticipantHealthOverview
	visits       map[int][]client.RecentVisit
	bp           map[int][]client.BloodPressureStats
	weight       map[int][]client.WeightEntry
	glucose      map[int][]client.GlucoseEntry
	medications  map[int][]client.MedicationEntry
	goals        map[int][]client.Goal
	steps        map[int][]client.GoalStep
	locations    []client.Location
	researchers  []client.ResearcherParticipant
}

func demoUsers() (map[string]userRecord, error) {
	seed := []struct {
		id       int
		username string
		first    string
		last     string
		password string
	}{
		{1, "admin", "Alex", "Morgan", "password"},
		{2, "jdoe", "Jamie", "Doe", "letmein1234"},
	}

	users := make(map[string]userRecord, len(seed))
	for _, u := range seed {
		record, err := newUserRecord(u.id, u.username, u.first, u.last, u.password)
		if err != nil {
			return nil, err
		}
		users[u.username] = record
	}
	return users, nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func demoDataset() *dataset {
	d := &dataset{
		participants: make(map[int]client.Participant),
		demographics: make(map[int]client.ParticipantDemographics),
		overviews:    make(map[int]client.ParticipantHealthOverview),
		visits:       make(map[int][]client.RecentVisit),
		bp:           make(map[int][]client.BloodPressureStats),
		weight:       make(map[int][]client.WeightEntry),
		glucose:      make(map[int][]client.GlucoseEntry),
		medications:  make(map[int][]client.MedicationEntry),
		goals:        make(map[int][]client.Goal),
		steps:        make(map[int][]client.GoalStep),
	}

	d.locations = []client.Location{
		{ID: 1, Name: "Dominion Place", Program: client.ProgramRHWP},
		{ID: 2, Name: "Dominion Place - 4th Floor", Program: client.ProgramRHWP, ParentLocation: intPtr(1)},
		{ID: 3, Name: "Highland Park", Program: client.ProgramRHWP},
		{ID: 4, Name: "Mobile Unit A", Program: client.ProgramMHWP},
	}

	d.participants[1] = client.Participant{
		ID: 1, FirstName: "Rosa", LastName: "Nguyen",
		Email: "rosa.nguyen@example.org", PhoneNumberOne: "804-555-0101",
		DateOfBirth: "1948-03-14", Status: client.StatusActive, Program: client.ProgramRHWP,
	}
	d.participants[2] = client.Participant{
		ID: 2, FirstName: "Earl", LastName: "Whitaker",
		Email: "earl.whitaker@example.org", PhoneNumberOne: "804-555-0102",
		DateOfBirth: "1952-11-02", Status: client.StatusActive, Program: client.ProgramMHWP,
	}
	d.participants[3] = client.Participant{
		ID: 3, FirstName: "Marta", LastName: "Alvarez",
		Email: "marta.alvarez@example.org", PhoneNumberOne: "804-555-0103",
		DateOfBirth: "1960-07-21", Status: client.StatusInactive, Program: client.ProgramRHWP,
	}

	d.demographics[1] = client.ParticipantDemographics{
		ParticipantID: 1, Age: intPtr(78), Ethnicity: strPtr("Asian"),
		IsVeteran: boolPtr(false), Language: strPtr("Vietnamese"),
		HealthInsurance:       []client.HealthInsurance{client.InsuranceMedicare},
		HighestEducationLevel: strPtr("High School"),
	}
	d.demographics[2] = client.ParticipantDemographics{
		ParticipantID: 2, Age: intPtr(73), Ethnicity: strPtr("Black"),
		IsVeteran: boolPtr(true), Language: strPtr("English"),
		HealthInsurance: []client.HealthInsurance{client.InsuranceMedicare, client.InsuranceVA},
	}
	d.demographics[3] = client.ParticipantDemographics{
		ParticipantID: 3, Age: intPtr(66), Language: strPtr("Spanish"),
		HealthInsurance: []client.HealthInsurance{client.InsuranceMedicaid},
	}

	d.overviews[1] = client.ParticipantHealthOverview{
		ParticipantID: 1, Allergies: strPtr("penicillin"),
		ReportedHealthConditions: strPtr("hypertension, type 2 diabetes"),
		TakesMoreThan5Meds:       boolPtr(true),
		HasBloodPressureCuff:     boolPtr(true),
		Height:                   intPtr(158),
	}
	d.overviews[2] = client.ParticipantHealthOverview{
		ParticipantID: 2, ReportedHealthConditions: strPtr("COPD"),
		TakesMoreThan5Meds:   boolPtr(false),
		HasBloodPressureCuff: boolPtr(false),
		Height:               intPtr(180),
	}
	d.overviews[3] = client.ParticipantHealthOverview{ParticipantID: 3}

	// Visit and measurement series. Participant 1 gets 25 weekly visits so
	// default paging yields three pages.
	base := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		day := base.AddDate(0, 0, 7*i).Format("2006-01-02")
		caseNoteID := 100 + i

		d.visits[1] = append(d.visits[1], client.RecentVisit{
			ID: caseNoteID, ParticipantID: 1, DateOfVisit: day,
			VisitType: "Wellness Check", Location: 2,
		})
		d.bp[1] = append(d.bp[1], client.BloodPressureStats{
			CaseNoteID: caseNoteID, DateOfVisit: day,
			BloodPressure: map[string]client.BloodPressureReading{
				client.ReadingSit:   {Systolic: 118 + i%8, Diastolic: 76 + i%6},
				client.ReadingStand: {Systolic: 124 + i%8, Diastolic: 80 + i%6},
			},
		})
		d.weight[1] = append(d.weight[1], client.WeightEntry{
			CaseNoteID: caseNoteID, DateOfVisit: day,
			Weight: 142.0 - float64(i)*0.3,
		})
		d.glucose[1] = append(d.glucose[1], client.GlucoseEntry{
			CaseNoteID: caseNoteID, DateOfVisit: day,
			Fasting: boolPtr(i%2 == 0), Result: 102 + float64(i%15),
		})
	}
	d.visits[2] = []client.RecentVisit{
		{ID: 200, ParticipantID: 2, DateOfVisit: "2024-02-12", VisitType: "Home Visit", Location: 4},
		{ID: 201, ParticipantID: 2, DateOfVisit: "2024-03-11", VisitType: "Home Visit", Location: 4},
	}
	d.bp[2] = []client.BloodPressureStats{
		{CaseNoteID: 200, DateOfVisit: "2024-02-12", BloodPressure: map[string]client.BloodPressureReading{
			client.ReadingSit: {Systolic: 135, Diastolic: 88},
		}},
	}

	d.medications[1] = []client.MedicationEntry{
		{ID: 1, Name: "Lisinopril", Dosage: "10 mg", Frequency: "daily",
			DatePrescribed: strPtr("2023-06-01"), DateEnteredIntoSystem: "2023-06-03", IsCurrent: boolPtr(true)},
		{ID: 2, Name: "Metformin", Dosage: "500 mg", Frequency: "twice daily",
			DatePrescribed: strPtr("2023-08-15"), DateEnteredIntoSystem: "2023-08-15", IsCurrent: boolPtr(true)},
		{ID: 3, Name: "Atorvastatin", Dosage: "20 mg", Frequency: "nightly",
			DateEnteredIntoSystem: "2022-01-10", IsCurrent: boolPtr(false),
			Comments: strPtr("discontinued after muscle pain")},
	}
	d.medications[2] = []client.MedicationEntry{
		{ID: 4, Name: "Albuterol", Dosage: "90 mcg", Frequency: "as needed",
			DateEnteredIntoSystem: "2024-01-20", IsCurrent: boolPtr(true)},
	}

	d.goals[1] = []client.Goal{
		{ID: 1, ParticipantID: 1, Goal: "Walk 20 minutes a day", IsActive: boolPtr(true)},
		{ID: 2, ParticipantID: 1, Goal: "Lower A1C below 7", IsActive: boolPtr(true)},
	}
	d.steps[1] = []client.GoalStep{
		{ID: 1, GoalID: intPtr(1), ParticipantID: 1, Step: "Walk to the mailbox and back each morning",
			ConfidenceLevel: intPtr(8), IsComplete: boolPtr(true), DateSet: strPtr("2024-01-03")},
		{ID: 2, GoalID: intPtr(1), ParticipantID: 1, Step: "Join the Tuesday walking group",
			ConfidenceLevel: intPtr(6), IsComplete: boolPtr(false), DateSet: strPtr("2024-02-07"),
			DateToBeCompleted: strPtr("2024-04-01")},
	}
	d.steps[2] = []client.GoalStep{
		{ID: 3, GoalID: intPtr(2), ParticipantID: 1, Step: "Check fasting glucose every morning",
			ConfidenceLevel: intPtr(9), IsComplete: boolPtr(false), DateSet: strPtr("2024-01-03")},
	}

	for _, id := range slices.Sorted(maps.Keys(d.participants)) {
		p := d.participants[id]
		row := client.ResearcherParticipant{
			ParticipantID:  id,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PhoneNumberOne: strPtr(p.PhoneNumberOne),
		}
		if visits := d.visits[id]; len(visits) > 0 {
			for _, v := range visits {
				row.VisitHistory = append(row.VisitHistory, v.DateOfVisit)
			}
			row.LastVisited = strPtr(visits[len(visits)-1].DateOfVisit)
		}
		d.researchers = append(d.researchers, row)
	}

	return d
}

func (d *dataset) siteInfo() client.SiteInfo {
	return client.SiteInfo{
		Version:   "0.9.0-mock",
		BuildTime: "2026-08-01T00:00:00Z",
		Branch:    strPtr("main"),
		Commit:    strPtr(fmt.Sprintf("%040d", 0)),
		Features: client.SiteInfoFeatures{
			OpenAPIRoutes: true,
			Scalar:        false,
		},
	}
}
