package infra

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const checkExecInterval = 5 * time.Second

// MonitorExecutable signals once when the running binary changes on disk,
// letting a supervisor restart into the new build. The channel closes without
// a signal when monitoring cannot start or the context ends first.
func MonitorExecutable(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{})
	logger := log.WithField("context", "exe_monitor")

	go func() {
		defer close(ch)

		path, err := os.Executable()
		if err != nil {
			logger.WithError(err).Warn("cant resolve executable path")
			return
		}
		baseline, err := modTime(path)
		if err != nil {
			logger.WithError(err).Warn("cant stat executable")
			return
		}

		ticker := time.NewTicker(checkExecInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, err := modTime(path)
				if err != nil {
					logger.WithError(err).Warn("cant stat executable")
					continue
				}
				if !current.Equal(baseline) {
					ch <- struct{}{}
					return
				}
			}
		}
	}()
	return ch
}

func modTime(path string) (time.Time, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return stat.ModTime(), nil
}
