package regprobe

import "testing"

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in      string
		hive    string
		subPath string
		wantErr bool
	}{
		{`HKLM\SOFTWARE\Policies\Microsoft\Windows\WindowsUpdate`, "HKLM", `SOFTWARE\Policies\Microsoft\Windows\WindowsUpdate`, false},
		{`HKEY_LOCAL_MACHINE\SOFTWARE\Microsoft\CCM`, "HKLM", `SOFTWARE\Microsoft\CCM`, false},
		{`hkcu\Software\Test`, "HKCU", `Software\Test`, false},
		{"HKLM/SOFTWARE/Microsoft", "HKLM", `SOFTWARE\Microsoft`, false},
		{"HKEY_USERS", "HKU", "", false},
		{"HKCC\\System", "HKCC", "System", false},
		{"HKCR\\.txt", "HKCR", ".txt", false},
		{"", "", "", true},
		{"   ", "", "", true},
		{`HKXX\Whatever`, "", "", true},
	}

	for _, tt := range tests {
		hive, subPath, err := SplitPath(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SplitPath(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SplitPath(%q): %v", tt.in, err)
			continue
		}
		if hive != tt.hive || subPath != tt.subPath {
			t.Errorf("SplitPath(%q) = %q,%q want %q,%q", tt.in, hive, subPath, tt.hive, tt.subPath)
		}
	}
}

func TestTypeName(t *testing.T) {
	cases := map[uint32]string{
		1:  "REG_SZ",
		2:  "REG_EXPAND_SZ",
		3:  "REG_BINARY",
		4:  "REG_DWORD",
		7:  "REG_MULTI_SZ",
		11: "REG_QWORD",
		99: "REG_99",
	}
	for code, want := range cases {
		if got := TypeName(code); got != want {
			t.Errorf("TypeName(%d) = %s, want %s", code, got, want)
		}
	}
}
