package evaluation

// ResolveRole determines the single capacity in which the assessor may
// score the subject. Checked in order, first match wins:
//
//  1. SELF — assessor and subject are the same employee.
//  2. MANAGER — assessor holds a manager account in the subject's department.
//  3. SUPERVISOR — assessor holds a supervisor account in the subject's department.
//
// Anything else is ErrPermissionDenied. There is no fallback: a manager
// from another department cannot score here.
func ResolveRole(assessor, subject Employee) (Role, error) {
	if assessor.Code == subject.Code {
		return RoleSelf, nil
	}
	if assessor.DepartmentID == subject.DepartmentID {
		switch assessor.AccountRole {
		case AccountRoleManager:
			return RoleManager, nil
		case AccountRoleSupervisor:
			return RoleSupervisor, nil
		}
	}
	return "", ErrPermissionDenied
}

// roleScore picks the score field the resolved role owns. The other two
// fields in the item are ignored so a submitter can never set another
// role's score.
func roleScore(role Role, item SubmitItem) int64 {
	switch role {
	case RoleSelf:
		return item.EmployeeScore
	case RoleSupervisor:
		return item.SupervisorScore
	default:
		return item.ManagerScore
	}
}
