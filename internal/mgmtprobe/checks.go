package mgmtprobe

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/opsdeck/winprobe/internal/regprobe"
	"github.com/opsdeck/winprobe/internal/winsvc"
)

const commandTimeout = 5 * time.Second

// checkDispatcher evaluates Check probes against one process snapshot.
type checkDispatcher struct {
	processSnap *processSnapshot
}

func newCheckDispatcher(snap *processSnapshot) *checkDispatcher {
	return &checkDispatcher{processSnap: snap}
}

// evaluate runs a single check and returns true if the probe matched.
func (d *checkDispatcher) evaluate(c Check) bool {
	// Per-check OS filter
	if c.OS != "" && c.OS != runtime.GOOS {
		return false
	}

	switch c.Type {
	case CheckFileExists:
		_, err := os.Stat(c.Value)
		return err == nil
	case CheckServiceRunning:
		return d.checkServiceRunning(c.Value)
	case CheckProcessRunning:
		return d.processSnap.isRunning(c.Value)
	case CheckRegistryKey:
		return regprobe.KeyExists(c.Value)
	case CheckCommand:
		return d.checkCommand(c.Value, c.Parse)
	default:
		log.Warn("unknown check type", "type", c.Type)
		return false
	}
}

func (d *checkDispatcher) checkServiceRunning(name string) bool {
	running, err := winsvc.IsRunning(name)
	if err != nil {
		log.Debug("service check failed", "service", name, "error", err)
		return false
	}
	return running
}

func (d *checkDispatcher) checkCommand(command, parse string) bool {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Warn("command timed out", "command", parts[0])
		} else if !errors.Is(err, exec.ErrNotFound) {
			log.Debug("command failed", "command", parts[0], "error", err)
		}
		return false
	}
	if parse == "" {
		return true
	}
	return strings.Contains(string(output), parse)
}

// evaluateSignature runs a signature's checks in order and returns a
// Detection on the first match. Service and process matches mean the tool
// is active; file and registry matches only prove installation.
func evaluateSignature(d *checkDispatcher, sig Signature) (Detection, bool) {
	det := Detection{
		Name:     sig.Name,
		Category: sig.Category,
		Status:   StatusInstalled,
	}

	for _, check := range sig.Checks {
		if !d.evaluate(check) {
			continue
		}
		switch check.Type {
		case CheckServiceRunning:
			det.Status = StatusActive
			det.ServiceName = check.Value
		case CheckProcessRunning:
			det.Status = StatusActive
		}
		return det, true
	}

	return Detection{}, false
}
