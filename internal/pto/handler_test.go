package pto_test

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
	gormLogger "gorm.io/gorm/logger"

	"pto-tracker/internal"
	"pto-tracker/internal/pto"
	ptoPostgres "pto-tracker/internal/pto/postgres"
	"pto-tracker/internal/transport"
	"pto-tracker/internal/user"
	userPostgres "pto-tracker/internal/user/postgres"
)

var _ = Describe("PTO Handler Integration", func() {
	var (
		db      *gorm.DB
		service *pto.Service
		handler *pto.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&user.User{}, &pto.PTORequest{})).To(Succeed())

		seeded := &user.User{
			ID:           1,
			Email:        "john@example.com",
			PasswordHash: "x",
			MaxPTOHours:  120,
			UsedPTOHours: 100,
		}
		Expect(db.Create(seeded).Error).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		userRepo := userPostgres.NewUserRepository(db)
		requestRepo := ptoPostgres.NewPTORequestRepository(db)
		service = pto.NewService(userRepo, requestRepo, slogger)
		handler = pto.NewHandler(transport.NewBaseHandler(slogger), service)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	authed := func(r *http.Request, userID int64) *http.Request {
		return r.WithContext(internal.ContextWithUserID(r.Context(), userID))
	}

	submitBody := func(date string, hours int, reason string) *bytes.Buffer {
		body, _ := json.Marshal(pto.SubmitRequestDTO{RequestDate: date, Hours: hours, Reason: reason})
		return bytes.NewBuffer(body)
	}

	Describe("GET /pto/balance", func() {
		It("returns the balance for the authenticated user", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/pto/balance", nil), 1)
			w := httptest.NewRecorder()

			handler.GetBalance(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var balance pto.Balance
			Expect(json.NewDecoder(w.Body).Decode(&balance)).To(Succeed())
			Expect(balance).To(Equal(pto.Balance{MaxHours: 120, UsedHours: 100, RemainingHours: 20}))
		})

		It("returns 404 for a token holder whose row is gone", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/pto/balance", nil), 42)
			w := httptest.NewRecorder()

			handler.GetBalance(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("User not found"))
		})

		It("returns 401 without an authenticated identity", func() {
			req := httptest.NewRequest(http.MethodGet, "/pto/balance", nil)
			w := httptest.NewRecorder()

			handler.GetBalance(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("POST /pto/request", func() {
		It("rejects hours above the remaining balance and mutates nothing", func() {
			req := authed(httptest.NewRequest(http.MethodPost, "/pto/request", submitBody("02/01/2025", 30, "Vacation")), 1)
			w := httptest.NewRecorder()

			handler.SubmitRequest(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Insufficient PTO balance"))

			var count int64
			Expect(db.Model(&pto.PTORequest{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())

			var u user.User
			Expect(db.First(&u, 1).Error).To(Succeed())
			Expect(u.UsedPTOHours).To(Equal(100))
		})

		It("accepts a request within the balance and debits used hours", func() {
			req := authed(httptest.NewRequest(http.MethodPost, "/pto/request", submitBody("02/01/2025", 10, "Vacation")), 1)
			w := httptest.NewRecorder()

			handler.SubmitRequest(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp pto.MessageResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("PTO request submitted successfully"))

			var u user.User
			Expect(db.First(&u, 1).Error).To(Succeed())
			Expect(u.UsedPTOHours).To(Equal(110))

			var rows []pto.PTORequest
			Expect(db.Find(&rows).Error).To(Succeed())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Status).To(Equal(pto.StatusPending))
			Expect(rows[0].RequestDate).To(Equal("02/01/2025"))
			Expect(rows[0].Hours).To(Equal(10))
			Expect(rows[0].Reason).To(Equal("Vacation"))
		})

		It("rejects a payload with missing fields", func() {
			req := authed(httptest.NewRequest(http.MethodPost, "/pto/request", submitBody("", 10, "")), 1)
			w := httptest.NewRecorder()

			handler.SubmitRequest(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("requestDate, hours, and reason are required"))
		})

		It("returns 404 when the user row is missing", func() {
			req := authed(httptest.NewRequest(http.MethodPost, "/pto/request", submitBody("02/01/2025", 10, "Vacation")), 42)
			w := httptest.NewRecorder()

			handler.SubmitRequest(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /pto/requests", func() {
		BeforeEach(func() {
			Expect(service.SubmitRequest(1, pto.SubmitRequestDTO{RequestDate: "02/01/2025", Hours: 4, Reason: "Errand"})).To(Succeed())
			Expect(service.SubmitRequest(1, pto.SubmitRequestDTO{RequestDate: "02/02/2025", Hours: 6, Reason: "Vacation"})).To(Succeed())
		})

		It("lists the user's requests in insertion order", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/pto/requests", nil), 1)
			w := httptest.NewRecorder()

			handler.GetRequests(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var rows []pto.PTORequest
			Expect(json.NewDecoder(w.Body).Decode(&rows)).To(Succeed())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].RequestDate).To(Equal("02/01/2025"))
			Expect(rows[1].RequestDate).To(Equal("02/02/2025"))
			Expect(rows[0].UserID).To(Equal(int64(1)))
		})

		It("returns an empty array, not null, for a user with no requests", func() {
			other := &user.User{ID: 2, Email: "jane@example.com", PasswordHash: "x", MaxPTOHours: 80}
			Expect(db.Create(other).Error).To(Succeed())

			req := authed(httptest.NewRequest(http.MethodGet, "/pto/requests", nil), 2)
			w := httptest.NewRecorder()

			handler.GetRequests(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("[]"))
		})
	})
})
