package mgmtprobe

import "testing"

const sampleDsregcmd = `
+----------------------------------------------------------------------+
| Device State                                                         |
+----------------------------------------------------------------------+

             AzureAdJoined : YES
          EnterpriseJoined : NO
              DomainJoined : YES
                DomainName : CORP
               Device Name : WS-0451.corp.example.com

+----------------------------------------------------------------------+
| Tenant Details                                                       |
+----------------------------------------------------------------------+

                TenantName : Example Corp
                  TenantId : 11111111-2222-3333-4444-555555555555
                    MdmUrl : https://enrollment.manage.microsoft.com/enrollmentserver/discovery.svc
`

func TestParseDsregcmdOutput(t *testing.T) {
	id := parseDsregcmdOutput(sampleDsregcmd)

	if !id.AzureAdJoined {
		t.Error("AzureAdJoined should be true")
	}
	if !id.DomainJoined {
		t.Error("DomainJoined should be true")
	}
	if id.JoinType != JoinTypeHybridAzureAD {
		t.Errorf("JoinType = %v, want hybrid", id.JoinType)
	}
	if id.DomainName != "CORP" {
		t.Errorf("DomainName = %q", id.DomainName)
	}
	if id.TenantId != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("TenantId = %q", id.TenantId)
	}
	if !id.MdmEnrolled() {
		t.Error("MdmUrl present, MdmEnrolled should be true")
	}
}

func TestParseDsregcmdEmpty(t *testing.T) {
	id := parseDsregcmdOutput("")
	if id.JoinType != JoinTypeNone {
		t.Errorf("JoinType = %v, want none", id.JoinType)
	}
	if id.MdmEnrolled() {
		t.Error("empty output should not report MDM enrollment")
	}
}

func TestDeriveJoinType(t *testing.T) {
	tests := []struct {
		name string
		id   IdentityStatus
		want JoinType
	}{
		{"hybrid", IdentityStatus{AzureAdJoined: true, DomainJoined: true}, JoinTypeHybridAzureAD},
		{"azure only", IdentityStatus{AzureAdJoined: true}, JoinTypeAzureAD},
		{"domain only", IdentityStatus{DomainJoined: true}, JoinTypeOnPremAD},
		{"workplace", IdentityStatus{WorkplaceJoined: true}, JoinTypeWorkplace},
		{"none", IdentityStatus{}, JoinTypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveJoinType(tt.id); got != tt.want {
				t.Errorf("deriveJoinType() = %v, want %v", got, tt.want)
			}
		})
	}
}
