package auth

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"pto-tracker/internal"
	"pto-tracker/internal/transport"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler *Handler
		service *Service
	)

	ginkgo.BeforeEach(func() {
		repo := newMockCredentialRepository()
		tokenGen := NewJWTTokenGenerator("test-secret-at-least-32-characters!!", time.Hour)
		service = NewService(repo, tokenGen)

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = NewHandler(transport.NewBaseHandler(slogger), service)
	})

	loginBody := func(email, password string) *bytes.Buffer {
		body, _ := json.Marshal(LoginDTO{Email: email, Password: password})
		return bytes.NewBuffer(body)
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("returns 200 with a token for valid credentials", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john@example.com", "correct_password"))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))

			var resp TokenResponse
			gomega.Expect(json.NewDecoder(w.Body).Decode(&resp)).To(gomega.Succeed())
			gomega.Expect(resp.Token).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("returns identical 401 bodies for wrong password and unknown email", func() {
			wrongPw := httptest.NewRecorder()
			handler.Login(wrongPw, httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john@example.com", "nope")))

			unknown := httptest.NewRecorder()
			handler.Login(unknown, httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("nobody@example.com", "nope")))

			gomega.Expect(wrongPw.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(unknown.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(wrongPw.Body.String()).To(gomega.Equal(unknown.Body.String()))
			gomega.Expect(wrongPw.Body.String()).To(gomega.ContainSubstring("Invalid credentials"))
		})

		ginkgo.It("returns 400 when fields are missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john@example.com", ""))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var (
			nextCalled bool
			seenUserID int64
			protected  http.Handler
		)

		ginkgo.BeforeEach(func() {
			nextCalled = false
			seenUserID = 0
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				seenUserID, _ = internal.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
		})

		ginkgo.It("rejects a request without an Authorization header", func() {
			req := httptest.NewRequest(http.MethodGet, "/pto/balance", nil)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})

		ginkgo.It("rejects a forged token", func() {
			req := httptest.NewRequest(http.MethodGet, "/pto/balance", nil)
			req.Header.Set("Authorization", "Bearer forged.token.value")
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})

		ginkgo.It("attaches the user id from a valid token", func() {
			token, err := service.Authenticate(LoginDTO{Email: "jane@example.com", Password: "correct_password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/pto/balance", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextCalled).To(gomega.BeTrue())
			gomega.Expect(seenUserID).To(gomega.Equal(int64(2)))
		})

		ginkgo.It("accepts a token sent without the Bearer prefix", func() {
			token, err := service.Authenticate(LoginDTO{Email: "john@example.com", Password: "correct_password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/pto/balance", nil)
			req.Header.Set("Authorization", token)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(seenUserID).To(gomega.Equal(int64(1)))
		})
	})
})
