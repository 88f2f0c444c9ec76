//go:build !windows

package mgmtprobe

func collectIdentityStatus() IdentityStatus {
	return IdentityStatus{JoinType: JoinTypeNone, Source: "unsupported"}
}
