package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/tupyy/async-services/api/v1"
	"github.com/tupyy/async-services/internal/config"
	"github.com/tupyy/async-services/internal/handlers"
	"github.com/tupyy/async-services/internal/jobs"
	"github.com/tupyy/async-services/internal/server"
	"github.com/tupyy/async-services/internal/services"
	"github.com/tupyy/async-services/internal/store"
	"github.com/tupyy/async-services/internal/store/migrations"
	"github.com/tupyy/async-services/internal/work"
	"github.com/tupyy/async-services/pkg/manager"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task manager, the cron jobs and the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	fs := cmd.Flags()
	registerServerFlags(fs, a.cfg)
	registerManagerFlags(fs, a.cfg)
	registerStoreFlags(fs, a.cfg)
	registerJobsFlags(fs, a.cfg)
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	log := zap.S().Named("serve")
	log.Infow("configuration loaded", "config", a.cfg.DebugMap())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(a.dbPath())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	st := store.NewStore(db)

	recorder := services.NewRecorder(st.Tasks())
	defer recorder.Close()

	m := newManager(a.cfg, manager.WithObserver(recorder.Observe))
	managerErr, err := startManager(ctx, m)
	if err != nil {
		return err
	}

	taskSrv := services.NewTaskService(m, work.NewCatalog(), st)
	jobSrv := services.NewJobService(taskSrv, time.Local)

	if a.cfg.Jobs.File != "" {
		f, err := jobs.Load(a.cfg.Jobs.File)
		if err != nil {
			m.Stop()
			<-m.Done()
			return err
		}
		if err := jobSrv.Reload(f.Jobs); err != nil {
			m.Stop()
			<-m.Done()
			return err
		}
		if a.cfg.Jobs.Watch {
			go func() {
				err := jobs.Watch(ctx, a.cfg.Jobs.File, func(f *jobs.File) {
					if err := jobSrv.Reload(f.Jobs); err != nil {
						log.Warnw("failed to reload jobs", "file", a.cfg.Jobs.File, "error", err)
					}
				})
				if err != nil {
					log.Errorw("jobs watcher stopped", "error", err)
				}
			}()
		}
	}
	jobSrv.Start()

	srv, err := server.NewServer(a.cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlersWithOptions(router, handlers.New(taskSrv, jobSrv), v1.GinServerOptions{
			ErrorHandler: func(c *gin.Context, err error, code int) {
				c.JSON(code, gin.H{"error": err.Error()})
			},
		})
	})
	if err != nil {
		<-jobSrv.Stop().Done()
		m.Stop()
		<-m.Done()
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(ctx)
	}()

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warnw("failed to notify systemd", "error", err)
	} else if ok {
		log.Debug("systemd notified")
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case runErr = <-serverErr:
		log.Errorw("http server failed", "error", runErr)
	case runErr = <-managerErr:
		if runErr == nil {
			runErr = errors.New("task manager stopped unexpectedly")
		}
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warnw("http server shutdown", "error", err)
	}
	<-jobSrv.Stop().Done()
	m.Stop()

	select {
	case <-m.Done():
	case <-shutdownCtx.Done():
		log.Warn("tasks still running at shutdown")
	}

	log.Info("bye")
	return runErr
}

func newManager(cfg *config.Configuration, opts ...manager.Option) *manager.Manager {
	opts = append([]manager.Option{
		manager.WithMaxConcurrency(cfg.Manager.MaxConcurrency),
		manager.WithDefaultTimeout(cfg.Manager.DefaultTimeout),
	}, opts...)
	return manager.New(opts...)
}

// startManager runs m in the background and returns once it accepts tasks.
func startManager(ctx context.Context, m *manager.Manager) (<-chan error, error) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Run(ctx)
	}()

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for !m.Snapshot().Running {
		select {
		case err := <-errCh:
			if err == nil {
				err = errors.New("task manager stopped before starting")
			}
			return nil, err
		case <-ticker.C:
		}
	}
	return errCh, nil
}
