package runner

import (
	"arch-provision/internal/logger" // Warnings for log writes that fail
	"fmt"
	"os"
)

// AppendLog writes text to the command log, creating it if needed.
// With appendMode false the log is truncated first.
// The file is opened and closed on every call.
func (r *Runner) AppendLog(text string, appendMode bool) (err error) {
	f, err := r.openLog(appendMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close log %s: %w", r.LogPath, cerr)
		}
	}()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("write log %s: %w", r.LogPath, err)
	}
	return nil
}

func (r *Runner) openLog(appendMode bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(r.LogPath, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", r.LogPath, err)
	}
	return f, nil
}

// appendLogQuietly appends to the log and drops any failure; a broken log
// must never stop provisioning.
func (r *Runner) appendLogQuietly(text string) {
	if err := r.AppendLog(text, true); err != nil {
		// Warn once per failed write but keep running the command
		logger.Warn("[WARN] %v\n", err)
	}
}
