package access

// Allowed reports whether perm grants the given capability. A nil record
// grants nothing; administrators never reach this check (they bypass all
// flags at the transport boundary).
func Allowed(perm *UserPermission, capability Capability) bool {
	if perm == nil {
		return false
	}
	switch capability {
	case CapAddEmployees:
		return perm.CanAddEmployees
	case CapEditEmployees:
		return perm.CanEditEmployees
	case CapDeleteEmployees:
		return perm.CanDeleteEmployees
	case CapAddProbations:
		return perm.CanAddProbations
	case CapEvaluateProbations:
		return perm.CanEvaluateProbations
	case CapDeleteProbations:
		return perm.CanDeleteProbations
	case CapAddContracts:
		return perm.CanAddContracts
	case CapEditContracts:
		return perm.CanEditContracts
	case CapRenewContracts:
		return perm.CanRenewContracts
	case CapDeleteContracts:
		return perm.CanDeleteContracts
	case CapImportData:
		return perm.CanImportData
	}
	return false
}

// Scope is the caller's read visibility. Department filtering is advisory
// and applied at the read boundary, not in storage queries.
type Scope struct {
	Admin      bool
	Department string
}

func ScopeFor(isAdmin bool, perm *UserPermission) Scope {
	if isAdmin {
		return Scope{Admin: true}
	}
	scope := Scope{}
	if perm != nil && perm.Department != nil {
		scope.Department = *perm.Department
	}
	return scope
}

// AllowsDepartment reports whether rows for the given employee department
// are visible to the caller.
func (s Scope) AllowsDepartment(department string) bool {
	if s.Admin || s.Department == "" {
		return true
	}
	return department == s.Department
}
