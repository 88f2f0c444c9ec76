package mgmtprobe

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/opsdeck/winprobe/internal/logging"
	"github.com/opsdeck/winprobe/internal/regprobe"
	"github.com/opsdeck/winprobe/internal/report"
)

var log = logging.L("mgmtprobe")

const gpoHistoryPath = `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Group Policy\History`

// CollectPosture scans the machine for management tooling. Signature
// checks run against one process snapshot; identity detection runs
// concurrently because dsregcmd can take seconds.
func CollectPosture() Posture {
	var posture Posture

	snap, err := newProcessSnapshot()
	if err != nil {
		posture.Errors = append(posture.Errors, "process snapshot: "+err.Error())
		snap = emptySnapshot()
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				mu.Lock()
				posture.Errors = append(posture.Errors, fmt.Sprintf("identity detection panic: %v", r))
				mu.Unlock()
				log.Error("panic in identity detection", "error", r)
			}
		}()
		id := collectIdentityStatus()
		mu.Lock()
		posture.Identity = id
		mu.Unlock()
	}()

	dispatcher := newCheckDispatcher(snap)
	goos := runtime.GOOS
	for _, sig := range UpdateManagerSignatures() {
		if !sig.MatchesOS(goos) {
			continue
		}
		if det, matched := evaluateSignature(dispatcher, sig); matched {
			posture.Detections = append(posture.Detections, det)
		}
	}

	if n, err := regprobe.SubKeyCount(gpoHistoryPath); err == nil {
		posture.GPOCount = n
	}

	posture.Policy = collectUpdatePolicy()

	wg.Wait()
	log.Debug("posture scan complete",
		"detections", len(posture.Detections),
		"processes", snap.count(),
		"errors", len(posture.Errors))
	return posture
}

// Probe collects management posture and evaluates conflict rules.
func Probe() report.Result {
	start := time.Now()
	r := Evaluate(CollectPosture())
	r.DurationMs = time.Since(start).Milliseconds()
	return r
}
