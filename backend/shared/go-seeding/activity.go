package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
)

func seedComplaints(ctx context.Context, repos Repositories, now time.Time) error {
	adminID := uuid.MustParse(DefaultAdminID)
	specs := []struct {
		title    string
		building string
		tenant   int
		status   models.ComplaintStatusType
		ageDays  int
		fixHours int
	}{
		{"Asansör arızası", "gunes", 0, models.ComplaintStatusResolved, 40, 30},
		{"Su kaçağı", "gunes", 1, models.ComplaintStatusResolved, 25, 6},
		{"Gürültü şikayeti", "gunes", 2, models.ComplaintStatusInProgress, 5, 0},
		{"Otopark girişi kapalı", "deniz", 7, models.ComplaintStatusOpen, 2, 0},
		{"Kapı zili çalışmıyor", "deniz", 8, models.ComplaintStatusRejected, 12, 0},
		{"Çöp toplama saati", "deniz", 9, models.ComplaintStatusClosed, 60, 0},
	}
	for i, s := range specs {
		created := now.AddDate(0, 0, -s.ageDays)
		name := demoTenantNames[s.tenant][0] + " " + demoTenantNames[s.tenant][1]
		c := &models.Complaint{
			ID:            seedID(fmt.Sprintf("complaint/%d", i)),
			BuildingID:    buildingID(s.building),
			UserID:        tenantID(s.tenant),
			Title:         s.title,
			Description:   s.title,
			Status:        s.status,
			SubmitterName: &name,
			CreatedAt:     created,
		}
		if s.status == models.ComplaintStatusResolved {
			c.ResolvedAt = utils.Ptr(created.Add(time.Duration(s.fixHours) * time.Hour))
			c.ResolvedByID = &adminID
		}
		if err := repos.Complaints.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func seedMeetings(ctx context.Context, repos Repositories, now time.Time) error {
	adminID := uuid.MustParse(DefaultAdminID)
	specs := []struct {
		building   string
		offsetDays int
		attendance float64
		cancelled  bool
	}{
		{"gunes", -90, 72.5, false},
		{"gunes", -30, 64, false},
		{"deniz", -45, 80, false},
		{"deniz", -10, 0, true},
		{"gunes", 14, 0, false},
	}
	for i, s := range specs {
		m := &models.Meeting{
			ID:             seedID(fmt.Sprintf("meeting/%d", i)),
			BuildingID:     buildingID(s.building),
			OrganizedByID:  adminID,
			Title:          "Olağan genel kurul",
			Location:       "Sığınak toplantı odası",
			MeetingDate:    now.AddDate(0, 0, s.offsetDays),
			IsCancelled:    s.cancelled,
			AttendanceRate: s.attendance,
		}
		if err := repos.Meetings.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

const demoSurveyQuestions = `[
	{"id": "satisfaction", "text": "Yönetimden memnun musunuz?", "type": "choice", "options": ["Evet", "Hayır", "Kısmen"]},
	{"text": "Bahçe düzenlemesi yapılsın mı?", "type": "choice", "options": ["Evet", "Hayır"]}
]`

// seedSurveys records responses through RecordResponse so the counts table
// and the response counter agree from the start.
func seedSurveys(ctx context.Context, repos Repositories, now time.Time) error {
	adminID := uuid.MustParse(DefaultAdminID)
	for i, b := range demoBuildings {
		s := &models.Survey{
			ID:          seedID(fmt.Sprintf("survey/%s", b.key)),
			BuildingID:  buildingID(b.key),
			CreatedByID: adminID,
			Title:       b.name + " memnuniyet anketi",
			Questions:   demoSurveyQuestions,
			Results:     "{}",
			StartDate:   now.AddDate(0, 0, -20+i),
			EndDate:     now.AddDate(0, 0, 10),
			IsActive:    true,
			CreatedAt:   now.AddDate(0, 0, -20+i),
		}
		if err := repos.Surveys.Create(ctx, s); err != nil {
			return err
		}
		answers := []map[string]string{
			{"satisfaction": "Evet", "q2": "Evet"},
			{"satisfaction": "Kısmen", "q2": "Evet"},
			{"satisfaction": "Evet", "q2": "Hayır"},
		}
		for j, a := range answers {
			if err := repos.Surveys.RecordResponse(ctx, s.ID, a, nil, now.AddDate(0, 0, -15+j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedNotifications(ctx context.Context, repos Repositories, now time.Time) error {
	adminID := uuid.MustParse(DefaultAdminID)
	titles := []string{"Su kesintisi", "Aidat hatırlatması", "Genel kurul duyurusu"}
	for i, t := range titles {
		bID := buildingID(demoBuildings[i%len(demoBuildings)].key)
		n := &models.Notification{
			ID:          seedID(fmt.Sprintf("notification/%d", i)),
			CreatedByID: adminID,
			BuildingID:  &bID,
			Title:       t,
			Message:     t,
			Type:        models.NotificationTypeGeneral,
			CreatedAt:   now.AddDate(0, 0, -7*(i+1)),
		}
		if err := repos.Notifications.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
