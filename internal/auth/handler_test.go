package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencivic/civic-reporter/internal/auth"
	"github.com/opencivic/civic-reporter/internal/transport"
)

var _ = Describe("Auth Handler", func() {
	var (
		handler *auth.Handler
		service *auth.Service
	)

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		tokens := auth.NewJWTTokenGenerator(testSecret, time.Hour)
		service = auth.NewService(adminEmail, string(hash), tokens, slogger)
		handler = auth.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	Describe("POST /auth/login", func() {
		It("should return a session token for valid credentials", func() {
			w := login(`{"email": "` + adminEmail + `", "password": "` + adminPassword + `"}`)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.TokenResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.AccessToken).NotTo(BeEmpty())
			Expect(resp.TokenType).To(Equal("Bearer"))
		})

		It("should return 401 for a wrong password", func() {
			w := login(`{"email": "` + adminEmail + `", "password": "wrong"}`)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Invalid email or password"))
		})

		It("should return 400 for malformed JSON", func() {
			w := login(`{"email": `)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /auth/me", func() {
		It("should return the admin identity for a valid token", func() {
			loginResp := login(`{"email": "` + adminEmail + `", "password": "` + adminPassword + `"}`)
			var tokens auth.TokenResponse
			Expect(json.NewDecoder(loginResp.Body).Decode(&tokens)).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
			w := httptest.NewRecorder()
			handler.Me(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var me auth.MeResponse
			Expect(json.NewDecoder(w.Body).Decode(&me)).To(Succeed())
			Expect(me.Email).To(Equal(adminEmail))
			Expect(me.Role).To(Equal("admin"))
		})

		It("should return 401 when the header is absent", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			w := httptest.NewRecorder()
			handler.Me(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Missing bearer token"))
		})

		It("should return 401 for an invalid token", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			req.Header.Set("Authorization", "Bearer bogus")
			w := httptest.NewRecorder()
			handler.Me(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
