package usecase

import (
	"encoding/base64"
	"strings"
)

// Coleções da árvore de cada tenant.
const (
	colLeads          = "leads"
	colTemplates      = "templates"
	colTriggers       = "triggers"
	colFlow           = "flow"
	colLandingPages   = "landingPages"
	colMeetings       = "meetings"
	colLeadStatuses   = "leadStatuses"
	colAdminUser      = "adminUser"
	colGreenApiConfig = "greenApiConfig"
)

func tenantPath(tenantID string, parts ...string) string {
	return strings.Join(append([]string{"users", tenantID}, parts...), "/")
}

func accountPath(email string) string {
	return "accounts/" + emailKey(email)
}

// tenantIndexPath guarda nome e email do dono para o retry do seed.
func tenantIndexPath(tenantID string) string {
	return "tenants/" + tenantID
}

func emailKey(email string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.ToLower(strings.TrimSpace(email))))
}
