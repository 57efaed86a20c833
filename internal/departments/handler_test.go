package departments_test

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

	departmentDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/department"
	"github.com/opencivic/civic-reporter/internal/departments"
	departmentsPostgres "github.com/opencivic/civic-reporter/internal/departments/postgres"
	"github.com/opencivic/civic-reporter/internal/transport"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    departments.RepositoryAPI
		service *departments.Service
		handler *departments.Handler
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

		err = db.AutoMigrate(&departmentDatamodel.Department{})
		Expect(err).NotTo(HaveOccurred())

		repo = departmentsPostgres.NewDepartmentRepository(db)
		service = departments.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = departments.NewHandler(baseHandler, service)

		router = chi.NewRouter()
		router.Get("/departments", handler.GetDepartments)
		router.Post("/departments", handler.CreateDepartment)
		router.Put("/departments/{id}", handler.UpdateDepartment)
		router.Delete("/departments/{id}", handler.DeleteDepartment)
	})

	Describe("POST /departments", func() {
		It("should create a department with active defaulting to true", func() {
			body := `{"name": "Parks", "description": "Parks and recreation"}`
			req := httptest.NewRequest(http.MethodPost, "/departments", bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created departments.Department
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.Active).To(BeTrue())
		})

		It("should name the missing field when the name is absent", func() {
			req := httptest.NewRequest(http.MethodPost, "/departments", bytes.NewBufferString(`{"description": "x"}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("name"))
		})
	})

	Describe("GET /departments", func() {
		It("should return an empty array when the table is empty", func() {
			req := httptest.NewRequest(http.MethodGet, "/departments", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[]`))
		})

		It("should list seeded departments", func() {
			Expect(service.SeedDefaults()).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/departments", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var list []departments.Department
			Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
			Expect(list).To(HaveLen(4))
		})
	})

	Describe("PUT /departments/{id}", func() {
		It("should toggle active", func() {
			created, err := service.CreateDepartment(departments.CreateDepartmentDTO{Name: "Parks"})
			Expect(err).NotTo(HaveOccurred())

			url := fmt.Sprintf("/departments/%d", created.ID)
			req := httptest.NewRequest(http.MethodPut, url, bytes.NewBufferString(`{"active": false}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updated departments.Department
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.Active).To(BeFalse())
		})

		It("should return 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodPut, "/departments/abc", bytes.NewBufferString(`{"active": false}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Invalid department ID"))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodPut, "/departments/999", bytes.NewBufferString(`{"active": false}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /departments/{id}", func() {
		It("should delete an existing department", func() {
			created, err := service.CreateDepartment(departments.CreateDepartmentDTO{Name: "Parks"})
			Expect(err).NotTo(HaveOccurred())

			url := fmt.Sprintf("/departments/%d", created.ID)
			req := httptest.NewRequest(http.MethodDelete, url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Department deleted successfully"))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodDelete, "/departments/999", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
