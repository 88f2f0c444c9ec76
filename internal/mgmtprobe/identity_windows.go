//go:build windows

package mgmtprobe

import (
	"context"
	"os/exec"
)

func collectIdentityStatus() IdentityStatus {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "dsregcmd", "/status")
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("dsregcmd failed", "error", err)
		return IdentityStatus{JoinType: JoinTypeNone, Source: "dsregcmd_error"}
	}
	return parseDsregcmdOutput(string(output))
}
