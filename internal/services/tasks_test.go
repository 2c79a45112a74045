package services_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/async-services/internal/services"
	"github.com/tupyy/async-services/internal/store"
	"github.com/tupyy/async-services/internal/store/migrations"
	"github.com/tupyy/async-services/internal/work"
	srvErrors "github.com/tupyy/async-services/pkg/errors"
	"github.com/tupyy/async-services/pkg/manager"
)

var _ = Describe("TaskService", func() {
	var (
		ctx      context.Context
		db       *sql.DB
		st       *store.Store
		m        *manager.Manager
		recorder *services.Recorder
		srv      *services.TaskService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())
		st = store.NewStore(db)

		recorder = services.NewRecorder(st.Tasks())
		m = manager.New(manager.WithObserver(recorder.Observe))
		go func() {
			defer GinkgoRecover()
			Expect(m.Run(context.Background())).To(Succeed())
		}()
		Eventually(func() bool { return m.Snapshot().Running }).Should(BeTrue())

		srv = services.NewTaskService(m, work.NewCatalog(), st)
	})

	AfterEach(func() {
		m.Stop()
		Eventually(m.Done(), 2*time.Second).Should(BeClosed())
		recorder.Close()
		db.Close()
	})

	Context("Submit", func() {
		It("should reject unknown kinds", func() {
			_, err := srv.Submit(ctx, services.SubmitRequest{Kind: "nope"})
			Expect(srvErrors.IsUnknownWorkKindError(err)).To(BeTrue())
		})

		It("should validate the request", func() {
			_, err := srv.Submit(ctx, services.SubmitRequest{})
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())

			_, err = srv.Submit(ctx, services.SubmitRequest{Kind: "echo", Timeout: -time.Second})
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())

			_, err = srv.Submit(ctx, services.SubmitRequest{Kind: "echo", CallbackURL: "ftp://host"})
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should wait for the result when asked", func() {
			res, err := srv.Submit(ctx, services.SubmitRequest{
				Kind:   "echo",
				Params: map[string]string{"value": "hello"},
				Wait:   true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Result).NotTo(BeNil())
			Expect(res.Result.Status).To(Equal(manager.StatusCompleted))
			Expect(res.Result.Value).To(Equal("hello"))

			// waited results are consumed
			_, err = srv.Result(res.ID)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should time out with the request timeout", func() {
			res, err := srv.Submit(ctx, services.SubmitRequest{Kind: "forever", Timeout: 50 * time.Millisecond, Wait: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Result.Status).To(Equal(manager.StatusTimeout))
		})

		It("should cancel the task when the caller goes away", func() {
			wctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			_, err := srv.Submit(wctx, services.SubmitRequest{Kind: "forever", Name: "abandoned", Wait: true})
			Expect(err).To(MatchError(context.DeadlineExceeded))

			Eventually(func() []manager.Status {
				h, err := srv.History(ctx, services.HistoryParams{Names: []string{"abandoned"}})
				Expect(err).NotTo(HaveOccurred())
				var statuses []manager.Status
				for _, r := range h.Records {
					statuses = append(statuses, r.Status)
				}
				return statuses
			}, 2*time.Second).Should(Equal([]manager.Status{manager.StatusCancelled}))
			Eventually(func() int { return srv.Snapshot().Tracked }, time.Second).Should(BeZero())
		})
	})

	Context("Result, Peek and Cancel", func() {
		It("should keep a running task readable and consume it once finished", func() {
			res, err := srv.Submit(ctx, services.SubmitRequest{Kind: "sleep", Params: map[string]string{"duration": "50ms", "value": "v"}})
			Expect(err).NotTo(HaveOccurred())

			tr, err := srv.Result(res.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Status).To(Equal(manager.StatusQueued))

			Eventually(func() manager.Status {
				tr, _ := srv.Peek(res.ID)
				return tr.Status
			}, time.Second).Should(Equal(manager.StatusCompleted))

			tr, err = srv.Result(res.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Value).To(Equal("v"))

			_, err = srv.Result(res.ID)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should map strict cancellation of a finished task to InvalidStateError", func() {
			res, err := srv.Submit(ctx, services.SubmitRequest{Kind: "echo"})
			Expect(err).NotTo(HaveOccurred())
			Eventually(func() manager.Status {
				tr, _ := srv.Peek(res.ID)
				return tr.Status
			}, time.Second).Should(Equal(manager.StatusCompleted))

			err = srv.Cancel(res.ID, true)
			Expect(srvErrors.IsInvalidStateError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("completed"))
			Expect(srv.Cancel(res.ID, false)).To(Succeed())
		})

		It("should cancel a running task", func() {
			res, err := srv.Submit(ctx, services.SubmitRequest{Kind: "forever"})
			Expect(err).NotTo(HaveOccurred())

			Expect(srv.Cancel(res.ID, true)).To(Succeed())
			Eventually(func() manager.Status {
				tr, _ := srv.Peek(res.ID)
				return tr.Status
			}, time.Second).Should(Equal(manager.StatusCancelled))
		})

		It("should map unknown ids to ResourceNotFoundError", func() {
			Expect(srvErrors.IsResourceNotFoundError(srv.Cancel("nope", false))).To(BeTrue())
			_, err := srv.Peek("nope")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should report an unavailable manager", func() {
			m.Stop()
			Eventually(m.Done(), 2*time.Second).Should(BeClosed())

			_, err := srv.Submit(ctx, services.SubmitRequest{Kind: "echo"})
			Expect(srvErrors.IsManagerUnavailableError(err)).To(BeTrue())
		})
	})

	Context("List and Snapshot", func() {
		It("should list tracked tasks with their kind", func() {
			_, err := srv.Submit(ctx, services.SubmitRequest{Kind: "forever", Name: "first"})
			Expect(err).NotTo(HaveOccurred())
			_, err = srv.Submit(ctx, services.SubmitRequest{Kind: "forever"})
			Expect(err).NotTo(HaveOccurred())

			tasks := srv.List()
			Expect(tasks).To(HaveLen(2))
			Expect(tasks[0].Name).To(Equal("first"))
			Expect(tasks[1].Name).To(Equal("forever"))
			Expect(tasks[1].Kind).To(Equal("forever"))

			snap := srv.Snapshot()
			Expect(snap.Running).To(BeTrue())
			Expect(snap.Tracked).To(Equal(2))
			Expect(snap.Queued).To(Equal(2))
		})
	})

	Context("callbacks", func() {
		var (
			mu       sync.Mutex
			payloads []map[string]any
			code     int
			hook     *httptest.Server
		)

		BeforeEach(func() {
			payloads = nil
			code = http.StatusNoContent
			hook = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var p map[string]any
				_ = json.NewDecoder(r.Body).Decode(&p)
				mu.Lock()
				payloads = append(payloads, p)
				c := code
				mu.Unlock()
				w.WriteHeader(c)
			}))
		})

		AfterEach(func() {
			hook.Close()
		})

		It("should post the outcome to the callback url", func() {
			res, err := srv.Submit(ctx, services.SubmitRequest{
				Kind:        "echo",
				Params:      map[string]string{"value": "v"},
				CallbackURL: hook.URL,
				Wait:        true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Result.Status).To(Equal(manager.StatusCompleted))

			mu.Lock()
			defer mu.Unlock()
			Expect(payloads).To(HaveLen(1))
			Expect(payloads[0]).To(HaveKeyWithValue("id", res.ID))
			Expect(payloads[0]).To(HaveKeyWithValue("status", "completed"))
			Expect(payloads[0]).To(HaveKeyWithValue("result", "v"))
		})

		It("should fail the task when the callback answers with an error", func() {
			mu.Lock()
			code = http.StatusBadGateway
			mu.Unlock()

			res, err := srv.Submit(ctx, services.SubmitRequest{
				Kind:        "echo",
				Params:      map[string]string{"value": "kept"},
				CallbackURL: hook.URL,
				Wait:        true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Result.Status).To(Equal(manager.StatusFailed))
			Expect(res.Result.Value).To(Equal("kept"))
			Expect(res.Result.Error).To(ContainSubstring("502"))
		})
	})

	Context("History", func() {
		It("should record finished tasks", func() {
			for _, kind := range []string{"echo", "fail", "echo"} {
				_, err := srv.Submit(ctx, services.SubmitRequest{Kind: kind, Wait: true})
				Expect(err).NotTo(HaveOccurred())
			}

			Eventually(func() int {
				h, err := srv.History(ctx, services.HistoryParams{})
				if err != nil {
					return -1
				}
				return h.Total
			}, 2*time.Second).Should(Equal(3))

			h, err := srv.History(ctx, services.HistoryParams{
				Statuses: []manager.Status{manager.StatusCompleted},
				Limit:    1,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(h.Total).To(Equal(2))
			Expect(h.Records).To(HaveLen(1))
			Expect(h.Records[0].Kind).To(Equal("echo"))

			h, err = srv.History(ctx, services.HistoryParams{Names: []string{"fail"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(h.Records).To(HaveLen(1))
			Expect(h.Records[0].Status).To(Equal(manager.StatusTaskException))
			Expect(h.Records[0].Error).To(Equal("work failed"))
		})
	})
})
