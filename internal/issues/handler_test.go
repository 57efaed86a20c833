package issues_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	issueDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/issue"
	userDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/user"
	"github.com/opencivic/civic-reporter/internal/issues"
	issuesPostgres "github.com/opencivic/civic-reporter/internal/issues/postgres"
	"github.com/opencivic/civic-reporter/internal/transport"
)

var _ = Describe("Issue Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    issues.RepositoryAPI
		service *issues.Service
		handler *issues.Handler
		router  *chi.Mux
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&issueDatamodel.Issue{}, &userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		err = db.Create(&userDatamodel.User{
			ID:    "U1",
			Name:  "Asha Verma",
			Email: "asha@example.com",
		}).Error
		Expect(err).NotTo(HaveOccurred())

		repo = issuesPostgres.NewIssueRepository(db)
		service = issues.NewService(repo, nil, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = issues.NewHandler(baseHandler, service)

		router = chi.NewRouter()
		router.Post("/issues", handler.CreateIssue)
		router.Get("/issues", handler.GetIssues)
		router.Get("/issues/{id}", handler.GetIssue)
		router.Put("/issues/{id}", handler.UpdateIssue)
		router.Delete("/issues/{id}", handler.DeleteIssue)
	})

	createIssue := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/issues", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("POST /issues", func() {
		It("should create an issue and return 201 with a generated id", func() {
			w := createIssue(`{
				"user_id": "U1",
				"description": "Large pothole near the school gate",
				"category": "Pothole",
				"location": "MG Road, Indiranagar, Bengaluru",
				"coordinates": {"lat": 12.97, "lng": 77.64}
			}`)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var created issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Status).To(Equal("Submitted"))
			Expect(created.Coordinates).NotTo(BeNil())
			Expect(created.Coordinates.Lat).To(Equal(12.97))
		})

		It("should reject a payload with no description", func() {
			w := createIssue(`{"user_id": "U1", "category": "Pothole", "location": "MG Road"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("description"))
		})

		It("should reject malformed JSON", func() {
			w := createIssue(`{"user_id": `)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Invalid request body"))
		})
	})

	Describe("GET /issues", func() {
		It("should return an empty array when nothing is stored", func() {
			req := httptest.NewRequest(http.MethodGet, "/issues", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[]`))
		})

		It("should list stored issues", func() {
			createIssue(`{"user_id": "U1", "description": "a", "category": "Garbage", "location": "X"}`)
			createIssue(`{"user_id": "U1", "description": "b", "category": "Garbage", "location": "X"}`)

			req := httptest.NewRequest(http.MethodGet, "/issues", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var list []issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
			Expect(list).To(HaveLen(2))
		})

		It("should filter by user_id", func() {
			db.Create(&userDatamodel.User{ID: "U2", Name: "Ravi", Email: "ravi@example.com"})
			createIssue(`{"user_id": "U1", "description": "a", "category": "Garbage", "location": "X"}`)
			createIssue(`{"user_id": "U2", "description": "b", "category": "Traffic", "location": "Y"}`)

			req := httptest.NewRequest(http.MethodGet, "/issues?user_id=U2", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var list []issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
			Expect(list).To(HaveLen(1))
			Expect(list[0].UserID).To(Equal("U2"))
		})
	})

	Describe("GET /issues/{id}", func() {
		It("should return the issue with the reporter joined", func() {
			w := createIssue(`{"user_id": "U1", "description": "Broken streetlight", "category": "Streetlight", "location": "MG Road"}`)
			var created issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/issues/"+created.ID, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var got issues.Issue
			Expect(json.NewDecoder(rec.Body).Decode(&got)).To(Succeed())
			Expect(got.Description).To(Equal("Broken streetlight"))
			Expect(got.Users).NotTo(BeNil())
			Expect(got.Users.Name).To(Equal("Asha Verma"))
			Expect(got.Users.Email).To(Equal("asha@example.com"))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodGet, "/issues/does-not-exist", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Issue not found"))
		})
	})

	Describe("PUT /issues/{id}", func() {
		var createdID string

		BeforeEach(func() {
			w := createIssue(`{"user_id": "U1", "description": "Overflowing bin", "category": "Garbage", "location": "Park Road"}`)
			var created issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			createdID = created.ID
		})

		It("should apply the triage fields and bump updated_at", func() {
			body := `{"status": "Resolved", "assigned_department": "Sanitation", "admin_remarks": "cleared"}`
			req := httptest.NewRequest(http.MethodPut, "/issues/"+createdID, bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updated issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.Status).To(Equal("Resolved"))
			Expect(*updated.AssignedDepartment).To(Equal("Sanitation"))
			Expect(*updated.AdminRemarks).To(Equal("cleared"))
			Expect(updated.UpdatedAt.After(updated.CreatedAt)).To(BeTrue())
		})

		It("should reject a status outside the allow-list", func() {
			req := httptest.NewRequest(http.MethodPut, "/issues/"+createdID, bytes.NewBufferString(`{"status": "Closed"}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("status"))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodPut, "/issues/missing", bytes.NewBufferString(`{"status": "Resolved"}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /issues/{id}", func() {
		It("should delete an existing issue", func() {
			w := createIssue(`{"user_id": "U1", "description": "d", "category": "Other", "location": "Z"}`)
			var created issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

			req := httptest.NewRequest(http.MethodDelete, "/issues/"+created.ID, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp map[string]string
			Expect(json.NewDecoder(rec.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Issue deleted successfully"))

			var count int64
			db.Model(&issueDatamodel.Issue{}).Count(&count)
			Expect(count).To(BeZero())
		})

		It("should return 404 when the issue was already deleted", func() {
			w := createIssue(`{"user_id": "U1", "description": "d", "category": "Other", "location": "Z"}`)
			var created issues.Issue
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

			url := fmt.Sprintf("/issues/%s", created.ID)
			first := httptest.NewRecorder()
			router.ServeHTTP(first, httptest.NewRequest(http.MethodDelete, url, nil))
			Expect(first.Code).To(Equal(http.StatusOK))

			second := httptest.NewRecorder()
			router.ServeHTTP(second, httptest.NewRequest(http.MethodDelete, url, nil))
			Expect(second.Code).To(Equal(http.StatusNotFound))
		})
	})
})
