package server_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tupyy/async-services/internal/config"
	"github.com/tupyy/async-services/internal/server"
	"github.com/tupyy/async-services/internal/server/middlewares"
)

var _ = Describe("Server", func() {
	var (
		cfg  *config.Configuration
		logs *observer.ObservedLogs
		undo func()
	)

	register := func(router *gin.RouterGroup) {
		router.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"subject": c.GetString(middlewares.SubjectKey)})
		})
		router.GET("/boom", func(c *gin.Context) {
			panic("boom")
		})
	}

	get := func(srv *server.Server, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		undo = zap.ReplaceGlobals(zap.New(core))

		cfg = config.NewConfigurationWithOptionsAndDefaults(
			config.WithServer(config.Server{ServerMode: "dev", HTTPPort: 8000}),
		)
	})

	AfterEach(func() {
		undo()
	})

	It("should serve the api group and health without auth", func() {
		srv, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		Expect(get(srv, "/health", "").Code).To(Equal(http.StatusOK))
		Expect(get(srv, "/api/v1/ping", "").Code).To(Equal(http.StatusOK))
	})

	It("should answer JSON 404 for unknown api routes", func() {
		srv, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		w := get(srv, "/api/v1/nothing", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(MatchJSON(`{"error":"not found"}`))
	})

	It("should recover from handler panics", func() {
		srv, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		Expect(get(srv, "/api/v1/boom", "").Code).To(Equal(http.StatusInternalServerError))
		Expect(logs.FilterMessageSnippet("Recovery from panic").Len()).To(Equal(1))
	})

	It("should log completed requests", func() {
		srv, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		get(srv, "/api/v1/ping", "")

		entries := logs.FilterMessage("request completed").All()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].LoggerName).To(Equal("http"))
		Expect(entries[0].ContextMap()).To(HaveKeyWithValue("path", "/api/v1/ping"))
		Expect(entries[0].ContextMap()).To(HaveKeyWithValue("status", int64(http.StatusOK)))
	})

	Context("authentication", func() {
		BeforeEach(func() {
			cfg.Auth = config.Authentication{Enabled: true, Secret: "s3cret"}
		})

		It("should refuse to start without a secret", func() {
			cfg.Auth.Secret = ""
			_, err := server.NewServer(cfg, register)
			Expect(err).To(HaveOccurred())
		})

		It("should require a valid token on the api group only", func() {
			srv, err := server.NewServer(cfg, register)
			Expect(err).NotTo(HaveOccurred())

			Expect(get(srv, "/health", "").Code).To(Equal(http.StatusOK))
			Expect(get(srv, "/api/v1/ping", "").Code).To(Equal(http.StatusUnauthorized))

			token, err := middlewares.GenerateToken("s3cret", "alice", time.Minute)
			Expect(err).NotTo(HaveOccurred())

			w := get(srv, "/api/v1/ping", token)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"subject":"alice"}`))
		})
	})

	Context("rate limiting", func() {
		It("should answer 429 once the bucket is empty", func() {
			cfg.Server.RateLimit = 0.001
			cfg.Server.RateBurst = 2

			srv, err := server.NewServer(cfg, register)
			Expect(err).NotTo(HaveOccurred())

			Expect(get(srv, "/api/v1/ping", "").Code).To(Equal(http.StatusOK))
			Expect(get(srv, "/api/v1/ping", "").Code).To(Equal(http.StatusOK))

			w := get(srv, "/api/v1/ping", "")
			Expect(w.Code).To(Equal(http.StatusTooManyRequests))
			Expect(w.Header().Get("Retry-After")).NotTo(BeEmpty())

			// health is not limited
			Expect(get(srv, "/health", "").Code).To(Equal(http.StatusOK))
		})
	})
})
