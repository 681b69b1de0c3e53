package cleanup

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler sweeps orphaned scratch files. Uploads are normally removed by
// the request that created them; this catches anything a crash left behind.
type Scheduler struct {
	dir      string
	interval time.Duration
	maxAge   time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler creates a new cleanup scheduler
func NewScheduler(dir string, interval, maxAge time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		dir:      dir,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs one sweep immediately then one per interval
func (s *Scheduler) Start() {
	s.logger.Info("running initial scratch cleanup", zap.String("dir", s.dir))
	s.Sweep()

	ticker := time.NewTicker(s.interval)

	go func() {
		defer close(s.done)
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	s.logger.Info("cleanup scheduler started",
		zap.Duration("interval", s.interval),
		zap.Duration("max_age", s.maxAge),
	)
}

// Stop stops the scheduler and waits for the loop to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		<-s.done
		s.logger.Info("cleanup scheduler stopped")
	})
}

// Sweep removes files older than maxAge and reports how many went
func (s *Scheduler) Sweep() int {
	now := s.now()

	var (
		deletedCount int
		deletedSize  int64
	)

	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}

		age := now.Sub(info.ModTime())
		if age <= s.maxAge {
			return nil
		}

		size := info.Size()
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to delete old scratch file", zap.String("file", path), zap.Error(err))
			return nil
		}
		deletedCount++
		deletedSize += size
		s.logger.Debug("deleted old scratch file",
			zap.String("file", filepath.Base(path)),
			zap.Duration("age", age.Round(time.Second)),
			zap.Int64("size", size),
		)
		return nil
	})
	if err != nil {
		s.logger.Error("scratch cleanup failed", zap.Error(err))
	}

	if deletedCount > 0 {
		s.logger.Info("scratch cleanup complete",
			zap.Int("files", deletedCount),
			zap.Float64("freed_mb", float64(deletedSize)/(1024*1024)),
		)
	}
	return deletedCount
}
