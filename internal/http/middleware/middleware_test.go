package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faizanfirdousi/roast-my-gpa/internal/http/middleware"
)

var _ = Describe("middleware", func() {
	var (
		router *gin.Engine
		logs   *bytes.Buffer
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()

		logs = &bytes.Buffer{}
		previous := slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(logs, nil)))
		DeferCleanup(func() { slog.SetDefault(previous) })
	})

	Describe("Recovery", func() {
		It("answers a panic with the processing failure message", func() {
			router.Use(middleware.Recovery())
			router.GET("/boom", func(*gin.Context) { panic("kaboom") })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"Failed to process the PDF."}`))
			Expect(logs.String()).To(ContainSubstring("panic recovered"))
		})
	})

	Describe("Logger", func() {
		BeforeEach(func() {
			router.Use(middleware.Logger("/health"))
			router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
			router.GET("/api/", func(c *gin.Context) { c.String(http.StatusOK, "hi") })
			router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
		})

		It("logs regular requests", func() {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/?x=1", nil))
			Expect(logs.String()).To(ContainSubstring("/api/?x=1"))
			Expect(logs.String()).To(ContainSubstring("status=200"))
		})

		It("skips successful health probes", func() {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
			Expect(logs.String()).To(BeEmpty())
		})

		It("logs client errors at warn level", func() {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
			Expect(logs.String()).To(ContainSubstring("level=WARN"))
		})
	})

	Describe("CORS", func() {
		BeforeEach(func() {
			router.Use(middleware.CORS("http://localhost:5173"))
			router.GET("/api/", func(c *gin.Context) { c.String(http.StatusOK, "hi") })
		})

		It("allows the frontend origin", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
		})

		It("refuses other origins", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/", nil)
			req.Header.Set("Origin", "http://evil.example")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		})
	})
})
