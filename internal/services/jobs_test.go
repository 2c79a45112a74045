package services_test

import (
	"context"
	"database/sql"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/async-services/internal/jobs"
	"github.com/tupyy/async-services/internal/services"
	"github.com/tupyy/async-services/internal/store"
	"github.com/tupyy/async-services/internal/store/migrations"
	"github.com/tupyy/async-services/internal/work"
	"github.com/tupyy/async-services/pkg/manager"
)

type recordingSubmitter struct {
	mu       sync.Mutex
	requests []services.SubmitRequest
}

func (r *recordingSubmitter) Submit(_ context.Context, req services.SubmitRequest) (*services.SubmitResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return &services.SubmitResult{ID: "id"}, nil
}

func (r *recordingSubmitter) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, req.Name)
	}
	return out
}

var _ = Describe("JobService", func() {
	var (
		submitter *recordingSubmitter
		srv       *services.JobService
	)

	BeforeEach(func() {
		submitter = &recordingSubmitter{}
		srv = services.NewJobService(submitter, time.UTC)
		srv.Start()
	})

	AfterEach(func() {
		<-srv.Stop().Done()
	})

	It("should submit jobs on schedule", func() {
		Expect(srv.Reload([]jobs.Definition{
			{Name: "tick", Schedule: "* * * * * *", Kind: "echo", Timeout: time.Second, Params: map[string]string{"value": "x"}},
		})).To(Succeed())

		Eventually(submitter.names, 3*time.Second).Should(ContainElement("tick"))

		submitter.mu.Lock()
		req := submitter.requests[0]
		submitter.mu.Unlock()
		Expect(req.Kind).To(Equal("echo"))
		Expect(req.Timeout).To(Equal(time.Second))
		Expect(req.Params).To(HaveKeyWithValue("value", "x"))
		Expect(req.Wait).To(BeTrue())
	})

	It("should list entries sorted by name", func() {
		Expect(srv.Reload([]jobs.Definition{
			{Name: "b", Schedule: "@hourly", Kind: "echo"},
			{Name: "a", Schedule: "@every 10m", Kind: "sleep"},
		})).To(Succeed())

		entries := srv.Entries()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Name).To(Equal("a"))
		Expect(entries[0].Kind).To(Equal("sleep"))
		Expect(entries[1].Schedule).To(Equal("@hourly"))
		Expect(entries[1].Next).To(BeTemporally(">", time.Now()))
	})

	It("should replace entries on reload", func() {
		Expect(srv.Reload([]jobs.Definition{{Name: "old", Schedule: "@hourly", Kind: "echo"}})).To(Succeed())
		Expect(srv.Reload([]jobs.Definition{{Name: "new", Schedule: "@daily", Kind: "echo"}})).To(Succeed())

		entries := srv.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name).To(Equal("new"))
	})

	It("should keep the current entries when the new set is invalid", func() {
		Expect(srv.Reload([]jobs.Definition{{Name: "keep", Schedule: "@hourly", Kind: "echo"}})).To(Succeed())

		err := srv.Reload([]jobs.Definition{{Name: "bad", Schedule: "whenever", Kind: "echo"}})
		Expect(err).To(HaveOccurred())

		entries := srv.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name).To(Equal("keep"))
	})
})

var _ = Describe("JobService with a task manager", func() {
	var (
		db       *sql.DB
		m        *manager.Manager
		recorder *services.Recorder
		taskSrv  *services.TaskService
		srv      *services.JobService
	)

	BeforeEach(func() {
		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(context.Background(), db)).To(Succeed())
		st := store.NewStore(db)

		recorder = services.NewRecorder(st.Tasks())
		m = manager.New(manager.WithObserver(recorder.Observe))
		go func() {
			defer GinkgoRecover()
			Expect(m.Run(context.Background())).To(Succeed())
		}()
		Eventually(func() bool { return m.Snapshot().Running }).Should(BeTrue())

		taskSrv = services.NewTaskService(m, work.NewCatalog(), st)
		srv = services.NewJobService(taskSrv, time.UTC)
		srv.Start()
	})

	AfterEach(func() {
		<-srv.Stop().Done()
		m.Stop()
		Eventually(m.Done(), 2*time.Second).Should(BeClosed())
		recorder.Close()
		db.Close()
	})

	It("should consume the results of triggered tasks", func() {
		Expect(srv.Reload([]jobs.Definition{
			{Name: "tick", Schedule: "* * * * * *", Kind: "echo", Params: map[string]string{"value": "x"}},
		})).To(Succeed())

		Eventually(func() uint64 { return m.Snapshot().Finished }, 4*time.Second).Should(BeNumerically(">=", 2))
		Eventually(func() int { return m.Snapshot().Tracked }, time.Second).Should(BeZero())

		Eventually(func() int {
			h, err := taskSrv.History(context.Background(), services.HistoryParams{Names: []string{"tick"}})
			Expect(err).NotTo(HaveOccurred())
			return h.Total
		}, 2*time.Second).Should(BeNumerically(">=", 2))
	})

	It("should cancel running job tasks on stop", func() {
		Expect(srv.Reload([]jobs.Definition{
			{Name: "long", Schedule: "* * * * * *", Kind: "forever"},
		})).To(Succeed())

		Eventually(func() int { return m.Snapshot().InFlight }, 3*time.Second).Should(BeNumerically(">=", 1))

		Eventually(srv.Stop().Done(), 2*time.Second).Should(BeClosed())
		Eventually(func() int { return m.Snapshot().Tracked }, time.Second).Should(BeZero())
	})
})
