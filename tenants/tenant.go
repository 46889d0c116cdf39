package tenants

// Tenant is a pre-provisioned organisational record. A tenant must exist for
// an email before that email may register an account; provisioning and removal
// happen in an external process, the gateway only reads and links.
type Tenant struct {
	Email    string `json:"email" db:"email"`
	TenantID string `json:"tenant_id" db:"tenant_id"`
	UserID   string `json:"user_id" db:"user_id"` // provider account id, set on link
}
