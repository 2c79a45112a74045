package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	v1 "github.com/tupyy/async-services/api/v1"
	"github.com/tupyy/async-services/internal/handlers"
	"github.com/tupyy/async-services/internal/jobs"
	"github.com/tupyy/async-services/internal/models"
	"github.com/tupyy/async-services/internal/services"
	"github.com/tupyy/async-services/internal/store"
	"github.com/tupyy/async-services/internal/store/migrations"
	"github.com/tupyy/async-services/internal/work"
	"github.com/tupyy/async-services/pkg/manager"
)

var _ = Describe("Handler", func() {
	var (
		db      *sql.DB
		st      *store.Store
		m       *manager.Manager
		taskSrv *services.TaskService
		jobSrv  *services.JobService
		router  *gin.Engine
	)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	submit := func(body v1.SubmitRequest) v1.TaskResult {
		w := do(http.MethodPost, "/api/v1/tasks", body)
		Expect(w.Code).To(BeElementOf(http.StatusAccepted, http.StatusOK))
		var res v1.TaskResult
		Expect(json.Unmarshal(w.Body.Bytes(), &res)).To(Succeed())
		return res
	}

	BeforeEach(func() {
		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(context.Background(), db)).To(Succeed())
		st = store.NewStore(db)

		m = manager.New()
		go func() {
			defer GinkgoRecover()
			Expect(m.Run(context.Background())).To(Succeed())
		}()
		Eventually(func() bool { return m.Snapshot().Running }).Should(BeTrue())

		taskSrv = services.NewTaskService(m, work.NewCatalog(), st)
		jobSrv = services.NewJobService(taskSrv, time.UTC)

		router = gin.New()
		v1.RegisterHandlersWithOptions(router.Group("/api/v1"), handlers.New(taskSrv, jobSrv), v1.GinServerOptions{
			ErrorHandler: func(c *gin.Context, err error, code int) {
				c.JSON(code, gin.H{"error": err.Error()})
			},
		})
	})

	AfterEach(func() {
		m.Stop()
		Eventually(m.Done(), 2*time.Second).Should(BeClosed())
		db.Close()
	})

	Context("tasks", func() {
		It("should accept a task and return its result once", func() {
			// Given a submitted echo task
			res := submit(v1.SubmitRequest{Kind: "echo", Params: &map[string]string{"value": "hi"}})
			Expect(res.Status).To(Equal(v1.TaskStatusQueued))
			Expect(res.Id).NotTo(BeEmpty())

			// When it completes
			var got v1.TaskResult
			Eventually(func() v1.TaskStatus {
				w := do(http.MethodGet, "/api/v1/tasks/"+res.Id, nil)
				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(json.Unmarshal(w.Body.Bytes(), &got)).To(Succeed())
				return got.Status
			}).Should(Equal(v1.TaskStatusCompleted))
			Expect(got.Value).To(Equal("hi"))

			// Then the result is gone
			w := do(http.MethodGet, "/api/v1/tasks/"+res.Id, nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should answer with the result when asked to wait", func() {
			wait := true
			w := do(http.MethodPost, "/api/v1/tasks", v1.SubmitRequest{
				Kind:   "echo",
				Params: &map[string]string{"value": "done"},
				Wait:   &wait,
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var res v1.TaskResult
			Expect(json.Unmarshal(w.Body.Bytes(), &res)).To(Succeed())
			Expect(res.Status).To(Equal(v1.TaskStatusCompleted))
			Expect(res.Value).To(Equal("done"))
		})

		It("should report timeouts", func() {
			wait := true
			timeout := "50ms"
			w := do(http.MethodPost, "/api/v1/tasks", v1.SubmitRequest{Kind: "forever", Timeout: &timeout, Wait: &wait})
			Expect(w.Code).To(Equal(http.StatusOK))

			var res v1.TaskResult
			Expect(json.Unmarshal(w.Body.Bytes(), &res)).To(Succeed())
			Expect(res.Status).To(Equal(v1.TaskStatusTimeout))
			Expect(res.Error).NotTo(BeNil())
		})

		It("should reject bad requests", func() {
			Expect(do(http.MethodPost, "/api/v1/tasks", v1.SubmitRequest{Kind: "nope"}).Code).To(Equal(http.StatusBadRequest))

			timeout := "soon"
			Expect(do(http.MethodPost, "/api/v1/tasks", v1.SubmitRequest{Kind: "echo", Timeout: &timeout}).Code).
				To(Equal(http.StatusBadRequest))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader("{"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("invalid request body"))
		})

		It("should return 404 for unknown tasks", func() {
			w := do(http.MethodGet, "/api/v1/tasks/missing", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring(`"error"`))
		})

		It("should cancel a running task", func() {
			res := submit(v1.SubmitRequest{Kind: "forever"})

			w := do(http.MethodDelete, "/api/v1/tasks/"+res.Id, nil)
			Expect(w.Code).To(Equal(http.StatusAccepted))

			Eventually(func() v1.TaskStatus {
				var got v1.TaskResult
				w := do(http.MethodGet, "/api/v1/tasks/"+res.Id, nil)
				Expect(json.Unmarshal(w.Body.Bytes(), &got)).To(Succeed())
				return got.Status
			}).Should(Equal(v1.TaskStatusCancelled))
		})

		It("should answer 409 when strictly cancelling a finished task", func() {
			res := submit(v1.SubmitRequest{Kind: "echo"})
			Eventually(func() bool {
				r, err := taskSrv.Peek(res.Id)
				return err == nil && r.Status.IsTerminal()
			}).Should(BeTrue())

			Expect(do(http.MethodDelete, "/api/v1/tasks/"+res.Id+"?strict=true", nil).Code).To(Equal(http.StatusConflict))
			Expect(do(http.MethodDelete, "/api/v1/tasks/"+res.Id, nil).Code).To(Equal(http.StatusAccepted))
			Expect(do(http.MethodDelete, "/api/v1/tasks/missing", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("should reject a malformed strict flag", func() {
			w := do(http.MethodDelete, "/api/v1/tasks/abc?strict=maybe", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should list tracked tasks with the manager counters", func() {
			res := submit(v1.SubmitRequest{Kind: "forever", Name: ptr("blocker")})

			w := do(http.MethodGet, "/api/v1/tasks", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var list v1.TaskList
			Expect(json.Unmarshal(w.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Manager.Running).To(BeTrue())
			Expect(list.Manager.Accepted).To(BeNumerically(">=", 1))
			Expect(list.Tasks).To(ContainElement(SatisfyAll(
				HaveField("Id", res.Id),
				HaveField("Name", "blocker"),
				HaveField("Status", v1.TaskStatusQueued),
			)))
		})

		It("should answer 503 once the manager is stopped", func() {
			m.Stop()
			Eventually(m.Done(), 2*time.Second).Should(BeClosed())

			Expect(do(http.MethodPost, "/api/v1/tasks", v1.SubmitRequest{Kind: "echo"}).Code).
				To(Equal(http.StatusServiceUnavailable))
		})
	})

	Context("catalog", func() {
		It("should list work kinds", func() {
			w := do(http.MethodGet, "/api/v1/kinds", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var kinds []v1.WorkKind
			Expect(json.Unmarshal(w.Body.Bytes(), &kinds)).To(Succeed())
			Expect(kinds).To(ContainElement(HaveField("Name", "sleep")))
		})

		It("should list cron jobs", func() {
			Expect(jobSrv.Reload([]jobs.Definition{
				{Name: "hourly", Schedule: "@every 1h", Kind: "echo"},
			})).To(Succeed())
			jobSrv.Start()
			defer func() { <-jobSrv.Stop().Done() }()

			w := do(http.MethodGet, "/api/v1/jobs", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var entries []v1.JobEntry
			Expect(json.Unmarshal(w.Body.Bytes(), &entries)).To(Succeed())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Name).To(Equal("hourly"))
			Expect(entries[0].Kind).To(Equal("echo"))
		})
	})

	Context("history", func() {
		BeforeEach(func() {
			base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
			for i := 0; i < 25; i++ {
				status := manager.StatusCompleted
				if i%5 == 0 {
					status = manager.StatusTimeout
				}
				started := base.Add(time.Duration(i) * time.Minute)
				Expect(st.Tasks().Save(context.Background(), models.TaskRecord{
					ID:         fmt.Sprintf("task-%02d", i),
					Name:       "echo",
					Kind:       "echo",
					Status:     status,
					Result:     []byte(`"ok"`),
					QueuedAt:   started,
					StartedAt:  &started,
					FinishedAt: started.Add(1500 * time.Millisecond),
				})).To(Succeed())
			}
		})

		It("should paginate the history", func() {
			w := do(http.MethodGet, "/api/v1/history?page=2&pageSize=10", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var page v1.HistoryPage
			Expect(json.Unmarshal(w.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Total).To(Equal(25))
			Expect(page.PageCount).To(Equal(3))
			Expect(page.Page).To(Equal(2))
			Expect(page.Records).To(HaveLen(10))
			// most recent first
			Expect(page.Records[0].Id).To(Equal("task-14"))
			Expect(page.Records[0].DurationMs).To(Equal(int64(1500)))
			Expect(page.Records[0].Result).To(Equal("ok"))
		})

		It("should answer an empty page for a page number past the end", func() {
			w := do(http.MethodGet, "/api/v1/history?page=9223372036854775807&pageSize=100", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var page v1.HistoryPage
			Expect(json.Unmarshal(w.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Total).To(Equal(25))
			Expect(page.Page).To(Equal(math.MaxInt32))
			Expect(page.Records).To(BeEmpty())
		})

		It("should filter by status", func() {
			w := do(http.MethodGet, "/api/v1/history?status=timeout", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var page v1.HistoryPage
			Expect(json.Unmarshal(w.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Total).To(Equal(5))
			for _, r := range page.Records {
				Expect(r.Status).To(Equal(v1.TaskStatusTimeout))
			}
		})

		It("should reject unknown statuses", func() {
			Expect(do(http.MethodGet, "/api/v1/history?status=done", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("should export the history as a workbook", func() {
			w := do(http.MethodGet, "/api/v1/history/export?status=timeout", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("spreadsheetml"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("attachment"))

			f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			rows, err := f.GetRows("history")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(6))
		})
	})
})

func ptr(s string) *string {
	return &s
}
