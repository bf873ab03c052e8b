package evaluation

// Role is the capacity in which an assessor scores a subject employee.
type Role string

const (
	RoleSelf       Role = "SELF"
	RoleSupervisor Role = "SUPERVISOR"
	RoleManager    Role = "MANAGER"
)

// Account roles carried on the assessor's account.
const (
	AccountRoleEmployee   = "EMPLOYEE"
	AccountRoleSupervisor = "SUPERVISOR"
	AccountRoleManager    = "MANAGER"
)

// Workflow states derived from which roles have scored an assessment.
const (
	StateStarted            = "STARTED"
	StateSelfAssessed       = "SELF_ASSESSED"
	StateSupervisorReviewed = "SUPERVISOR_REVIEWED"
	StateCompleted          = "COMPLETED"
)
