package users_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	userDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/user"
	"github.com/opencivic/civic-reporter/internal/transport"
	"github.com/opencivic/civic-reporter/internal/users"
	usersPostgres "github.com/opencivic/civic-reporter/internal/users/postgres"
)

var _ = Describe("User Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    users.RepositoryAPI
		service *users.Service
		handler *users.Handler
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = usersPostgres.NewUserRepository(db)
		service = users.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = users.NewHandler(baseHandler, service)
	})

	Describe("POST /users", func() {
		It("should create a profile and return 201", func() {
			body := `{"id": "U1", "name": "Asha Verma", "email": "asha@example.com", "phone": "555-0100"}`
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
			w := httptest.NewRecorder()

			handler.CreateUser(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created users.User
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(Equal("U1"))
			Expect(created.Phone).NotTo(BeNil())
			Expect(*created.Phone).To(Equal("555-0100"))
		})

		It("should reject a payload with no name", func() {
			body := `{"id": "U1", "email": "asha@example.com"}`
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
			w := httptest.NewRecorder()

			handler.CreateUser(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("name"))
		})

		It("should return 500 on a duplicate email", func() {
			body := `{"id": "U1", "name": "Asha", "email": "asha@example.com"}`
			first := httptest.NewRecorder()
			handler.CreateUser(first, httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body)))
			Expect(first.Code).To(Equal(http.StatusCreated))

			dup := `{"id": "U2", "name": "Other", "email": "asha@example.com"}`
			second := httptest.NewRecorder()
			handler.CreateUser(second, httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(dup)))
			Expect(second.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GET /users", func() {
		It("should return an empty array when no profiles exist", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			w := httptest.NewRecorder()

			handler.GetUsers(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[]`))
		})

		It("should expose only the summary fields", func() {
			body := `{"id": "U1", "name": "Asha", "email": "asha@example.com", "phone": "555-0100", "aadhar_number": "1234"}`
			created := httptest.NewRecorder()
			handler.CreateUser(created, httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body)))
			Expect(created.Code).To(Equal(http.StatusCreated))

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			w := httptest.NewRecorder()
			handler.GetUsers(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var raw []map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&raw)).To(Succeed())
			Expect(raw).To(HaveLen(1))
			Expect(raw[0]).To(HaveKey("id"))
			Expect(raw[0]).To(HaveKey("name"))
			Expect(raw[0]).To(HaveKey("email"))
			Expect(raw[0]).To(HaveKey("created_at"))
			Expect(raw[0]).NotTo(HaveKey("phone"))
			Expect(raw[0]).NotTo(HaveKey("aadhar_number"))
			Expect(raw[0]).NotTo(HaveKey("address"))
		})
	})
})
