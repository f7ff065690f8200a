package access

import "time"

// UserPermission is an access-control record keyed by a free-text user
// name, optionally scoped to a single department (nil means all). Each
// flag independently gates exactly one mutation; there is no implied
// hierarchy between flags.
type UserPermission struct {
	ID                    string    `json:"id"`
	UserName              string    `json:"userName"`
	Department            *string   `json:"department"`
	CanAddEmployees       bool      `json:"canAddEmployees"`
	CanEditEmployees      bool      `json:"canEditEmployees"`
	CanDeleteEmployees    bool      `json:"canDeleteEmployees"`
	CanAddProbations      bool      `json:"canAddProbations"`
	CanEvaluateProbations bool      `json:"canEvaluateProbations"`
	CanDeleteProbations   bool      `json:"canDeleteProbations"`
	CanAddContracts       bool      `json:"canAddContracts"`
	CanEditContracts      bool      `json:"canEditContracts"`
	CanRenewContracts     bool      `json:"canRenewContracts"`
	CanDeleteContracts    bool      `json:"canDeleteContracts"`
	CanImportData         bool      `json:"canImportData"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type Capability string

const (
	CapAddEmployees       Capability = "employees.add"
	CapEditEmployees      Capability = "employees.edit"
	CapDeleteEmployees    Capability = "employees.delete"
	CapAddProbations      Capability = "probations.add"
	CapEvaluateProbations Capability = "probations.evaluate"
	CapDeleteProbations   Capability = "probations.delete"
	CapAddContracts       Capability = "contracts.add"
	CapEditContracts      Capability = "contracts.edit"
	CapRenewContracts     Capability = "contracts.renew"
	CapDeleteContracts    Capability = "contracts.delete"
	CapImportData         Capability = "import.run"
)

var AllCapabilities = []Capability{
	CapAddEmployees,
	CapEditEmployees,
	CapDeleteEmployees,
	CapAddProbations,
	CapEvaluateProbations,
	CapDeleteProbations,
	CapAddContracts,
	CapEditContracts,
	CapRenewContracts,
	CapDeleteContracts,
	CapImportData,
}
