package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jobxnepal/backend/internal/middleware"
	"github.com/jobxnepal/backend/internal/models"
	"gorm.io/gorm"
)

func newJobRouter(db *gorm.DB, storage *fakeStorage) *gin.Engine {
	h := NewJobHandler(db, storage)
	r := gin.New()
	employerOnly := middleware.RequireRoles(models.RoleEmployer)
	r.POST("/api/job/post", middleware.AuthMiddleware(db), employerOnly, h.PostJob)
	r.GET("/api/job/getall", h.GetAllJobs)
	r.GET("/api/job/getmyjobs", middleware.AuthMiddleware(db), employerOnly, h.GetMyJobs)
	r.GET("/api/job/get/:id", h.GetASingleJob)
	r.DELETE("/api/job/delete/:id", middleware.AuthMiddleware(db), employerOnly, h.DeleteJob)
	return r
}

func jobFields() map[string]string {
	return map[string]string{
		"title":            "Backend Dev",
		"jobType":          "Full-time",
		"location":         "Kathmandu",
		"companyName":      "JobxNepal",
		"introduction":     "We build job boards.",
		"responsibilities": "Write handlers.",
		"qualifications":   "Go experience.",
		"offers":           "Insurance.",
		"salary":           "80000",
		"jobCategory":      "IT",
	}
}

func TestPostJobWebsitePairValidation(t *testing.T) {
	db := setupTestDB(t)
	storage := &fakeStorage{}
	r := newJobRouter(db, storage)

	employer := seedUser(t, db, models.User{
		Name:  "Bikash Rai",
		Email: "bikash@example.com",
		Role:  models.RoleEmployer,
	}, "secret-password")

	fields := jobFields()
	fields["WebsiteUrl"] = "http://x.com"

	body, contentType := multipartBody(t, fields, map[string]string{"companyLogo": "logo.png"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/job/post", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(authCookie(t, employer))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decodeEnvelope(t, w); resp["message"] != "Provide both the website url and title, or leave both blank." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if storage.uploads != 0 {
		t.Errorf("expected no uploads, got %d", storage.uploads)
	}
}

func TestPostJobMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := newJobRouter(db, &fakeStorage{})

	employer := seedUser(t, db, models.User{
		Name:  "Bikash Rai",
		Email: "bikash@example.com",
		Role:  models.RoleEmployer,
	}, "secret-password")

	fields := jobFields()
	delete(fields, "salary")

	body, contentType := multipartBody(t, fields, map[string]string{"companyLogo": "logo.png"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/job/post", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(authCookie(t, employer))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp["message"] != "Please provide full job details." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestPostJobSuccess(t *testing.T) {
	db := setupTestDB(t)
	storage := &fakeStorage{}
	r := newJobRouter(db, storage)

	employer := seedUser(t, db, models.User{
		Name:  "Bikash Rai",
		Email: "bikash@example.com",
		Role:  models.RoleEmployer,
	}, "secret-password")

	body, contentType := multipartBody(t, jobFields(), map[string]string{"companyLogo": "logo.png"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/job/post", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(authCookie(t, employer))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if storage.uploads != 1 {
		t.Errorf("expected 1 logo upload, got %d", storage.uploads)
	}

	var job models.Job
	if err := db.Where("title = ?", "Backend Dev").First(&job).Error; err != nil {
		t.Fatalf("expected job to be persisted: %v", err)
	}
	if job.PostedBy != employer.ID {
		t.Errorf("expected postedBy %d, got %d", employer.ID, job.PostedBy)
	}
	if job.NewslettersSent {
		t.Error("expected a fresh job to have the sent flag unset")
	}
	if job.CompanyLogo.PublicID == "" {
		t.Error("expected a stored logo reference")
	}
}

func TestPostJobSeekerForbidden(t *testing.T) {
	db := setupTestDB(t)
	r := newJobRouter(db, &fakeStorage{})

	seeker := seedUser(t, db, models.User{
		Name:  "Asha Thapa",
		Email: "asha@example.com",
		Role:  models.RoleJobSeeker,
	}, "secret-password")

	body, contentType := multipartBody(t, jobFields(), map[string]string{"companyLogo": "logo.png"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/job/post", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(authCookie(t, seeker))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}

func TestGetAllJobsSearchKeyword(t *testing.T) {
	db := setupTestDB(t)
	r := newJobRouter(db, &fakeStorage{})

	seedJob(t, db, models.Job{Title: "Software Engineer", JobType: "Full-time", Location: "Kathmandu", CompanyName: "Acme", JobCategory: "IT", PostedBy: 1})
	seedJob(t, db, models.Job{Title: "Accountant", JobType: "Full-time", Location: "Pokhara", CompanyName: "Engineering Works", JobCategory: "Finance", PostedBy: 1})
	seedJob(t, db, models.Job{Title: "Chef", JobType: "Part-time", Location: "Lalitpur", CompanyName: "Hotel Everest", JobCategory: "Hospitality", PostedBy: 1})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/job/getall?searchKeyword=engineer", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if count, ok := resp["count"].(float64); !ok || int(count) != 2 {
		t.Errorf("expected 2 matches for keyword search, got %v", resp["count"])
	}
}

func TestGetAllJobsFilters(t *testing.T) {
	db := setupTestDB(t)
	r := newJobRouter(db, &fakeStorage{})

	seedJob(t, db, models.Job{Title: "Software Engineer", JobType: "Full-time", Location: "Kathmandu", CompanyName: "Acme", JobCategory: "IT", PostedBy: 1})
	seedJob(t, db, models.Job{Title: "Waiter", JobType: "Part-time", Location: "Kathmandu", CompanyName: "Hotel Everest", JobCategory: "Hospitality", PostedBy: 1})
	seedJob(t, db, models.Job{Title: "Accountant", JobType: "Full-time", Location: "Pokhara", CompanyName: "Ledger Ltd", JobCategory: "Finance", PostedBy: 1})

	cases := []struct {
		query string
		want  int
	}{
		{"city=Kathmandu", 2},
		{"jobType=Full-time", 2},
		{"jobCategory=it", 2}, // substring match also hits "Hospitality"
		{"city=Kathmandu&jobType=Part-time", 1},
		{"city=Dharan", 0},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/job/getall?"+tc.query, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("query %q: expected status 200, got %d", tc.query, w.Code)
		}
		resp := decodeEnvelope(t, w)
		if count, ok := resp["count"].(float64); !ok || int(count) != tc.want {
			t.Errorf("query %q: expected %d matches, got %v", tc.query, tc.want, resp["count"])
		}
	}
}

func TestGetMyJobs(t *testing.T) {
	db := setupTestDB(t)
	r := newJobRouter(db, &fakeStorage{})

	employer := seedUser(t, db, models.User{
		Name:  "Bikash Rai",
		Email: "bikash@example.com",
		Role:  models.RoleEmployer,
	}, "secret-password")

	seedJob(t, db, models.Job{Title: "Mine", JobType: "Full-time", Location: "Kathmandu", CompanyName: "Acme", JobCategory: "IT", PostedBy: employer.ID})
	seedJob(t, db, models.Job{Title: "Someone else's", JobType: "Full-time", Location: "Pokhara", CompanyName: "Other", JobCategory: "IT", PostedBy: employer.ID + 100})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/job/getmyjobs", nil)
	req.AddCookie(authCookie(t, employer))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	myJobs, ok := resp["myJobs"].([]interface{})
	if !ok || len(myJobs) != 1 {
		t.Errorf("expected exactly 1 owned job, got %v", resp["myJobs"])
	}
}

func TestGetASingleJobNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newJobRouter(db, &fakeStorage{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/job/get/9999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp["message"] != "Job not found." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestDeleteJobRemovesLogoAndRecord(t *testing.T) {
	db := setupTestDB(t)
	storage := &fakeStorage{}
	r := newJobRouter(db, storage)

	employer := seedUser(t, db, models.User{
		Name:  "Bikash Rai",
		Email: "bikash@example.com",
		Role:  models.RoleEmployer,
	}, "secret-password")

	job := seedJob(t, db, models.Job{
		Title: "Backend Dev", JobType: "Full-time", Location: "Kathmandu",
		CompanyName: "Acme", JobCategory: "IT", PostedBy: employer.ID,
		CompanyLogo: models.StoredFile{PublicID: "CompanyLogos/abc", URL: "https://files.test/abc"},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/job/delete/%d", job.ID), nil)
	req.AddCookie(authCookie(t, employer))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(storage.destroyed) != 1 || storage.destroyed[0] != "CompanyLogos/abc" {
		t.Errorf("expected the hosted logo to be destroyed, got %v", storage.destroyed)
	}

	var count int64
	db.Model(&models.Job{}).Where("id = ?", job.ID).Count(&count)
	if count != 0 {
		t.Error("expected the job record to be gone")
	}
}

func TestDeleteJobNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newJobRouter(db, &fakeStorage{})

	employer := seedUser(t, db, models.User{
		Name:  "Bikash Rai",
		Email: "bikash@example.com",
		Role:  models.RoleEmployer,
	}, "secret-password")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/job/delete/424242", nil)
	req.AddCookie(authCookie(t, employer))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp["message"] != "Oops! Job not found." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}
