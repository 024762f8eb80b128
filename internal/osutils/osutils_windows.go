//go:build windows

package osutils

import "golang.org/x/sys/windows"

// IsAdmin reports whether the process token is a member of the local
// Administrators group. Without it SendInput cannot reach elevated windows.
func IsAdmin() bool {
	var sid *windows.SID
	if err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	); err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	// A zero token checks the effective token of the calling thread.
	member, err := windows.Token(0).IsMember(sid)
	return err == nil && member
}
