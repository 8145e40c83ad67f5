package auth

// Permission catalog. Bit positions are append-only: every stored role
// permission integer depends on them, so a retired permission leaves its bit
// permanently unused rather than being recycled.
const (
	PermTasksCreate  Flag = "TASKS_CREATE"
	PermTasksView    Flag = "TASKS_VIEW"
	PermTasksViewAll Flag = "TASKS_VIEW_ALL"
	PermTasksEdit    Flag = "TASKS_EDIT"
	PermTasksDelete  Flag = "TASKS_DELETE"

	PermAssetsCreate Flag = "ASSETS_CREATE"
	PermAssetsRead   Flag = "ASSETS_READ"
	PermAssetsUpdate Flag = "ASSETS_UPDATE"
	PermAssetsDelete Flag = "ASSETS_DELETE"

	PermEmployeesCreate        Flag = "EMPLOYEES_CREATE"
	PermEmployeesRead          Flag = "EMPLOYEES_READ"
	PermEmployeesReadBasic     Flag = "EMPLOYEES_READ_BASIC_INFO"
	PermEmployeesReadSensitive Flag = "EMPLOYEES_READ_SENSITIVE_INFO"
	PermEmployeesUpdate        Flag = "EMPLOYEES_UPDATE"
	PermEmployeesDelete        Flag = "EMPLOYEES_DELETE"

	PermRolesCreate Flag = "ROLES_CREATE"
	PermRolesRead   Flag = "ROLES_READ"
	PermRolesUpdate Flag = "ROLES_UPDATE"
	PermRolesDelete Flag = "ROLES_DELETE"

	PermProjectsCreate  Flag = "PROJECTS_CREATE"
	PermProjectsRead    Flag = "PROJECTS_READ"
	PermProjectsReadAll Flag = "PROJECTS_READ_ALL"
	PermProjectsUpdate  Flag = "PROJECTS_UPDATE"
	PermProjectsDelete  Flag = "PROJECTS_DELETE"
)

var catalog = map[string]Bits{
	string(PermTasksCreate):  1 << 0,
	string(PermTasksView):    1 << 1,
	string(PermTasksViewAll): 1 << 2,
	string(PermTasksEdit):    1 << 3,
	string(PermTasksDelete):  1 << 4,

	string(PermAssetsCreate): 1 << 5,
	string(PermAssetsRead):   1 << 6,
	string(PermAssetsUpdate): 1 << 7,
	string(PermAssetsDelete): 1 << 8,

	string(PermEmployeesCreate):        1 << 9,
	string(PermEmployeesRead):          1 << 10,
	string(PermEmployeesReadBasic):     1 << 11,
	string(PermEmployeesReadSensitive): 1 << 12,
	string(PermEmployeesUpdate):        1 << 13,
	string(PermEmployeesDelete):        1 << 14,

	string(PermRolesCreate): 1 << 15,
	string(PermRolesRead):   1 << 16,
	string(PermRolesUpdate): 1 << 17,
	string(PermRolesDelete): 1 << 18,

	string(PermProjectsCreate):  1 << 19,
	string(PermProjectsRead):    1 << 20,
	string(PermProjectsReadAll): 1 << 21,
	string(PermProjectsUpdate):  1 << 22,
	string(PermProjectsDelete):  1 << 23,
}

// catalogOrder is the definition order used by Set.Names and Set.Missing.
var catalogOrder = []string{
	string(PermTasksCreate),
	string(PermTasksView),
	string(PermTasksViewAll),
	string(PermTasksEdit),
	string(PermTasksDelete),
	string(PermAssetsCreate),
	string(PermAssetsRead),
	string(PermAssetsUpdate),
	string(PermAssetsDelete),
	string(PermEmployeesCreate),
	string(PermEmployeesRead),
	string(PermEmployeesReadBasic),
	string(PermEmployeesReadSensitive),
	string(PermEmployeesUpdate),
	string(PermEmployeesDelete),
	string(PermRolesCreate),
	string(PermRolesRead),
	string(PermRolesUpdate),
	string(PermRolesDelete),
	string(PermProjectsCreate),
	string(PermProjectsRead),
	string(PermProjectsReadAll),
	string(PermProjectsUpdate),
	string(PermProjectsDelete),
}

// FlagNames returns every catalog name in definition order.
func FlagNames() []string {
	out := make([]string, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}

// AllBits is the union of every catalog bit.
func AllBits() Bits {
	var out Bits
	for _, bits := range catalog {
		out |= bits
	}
	return out
}

// FlagBits returns the bit for a single catalog name.
func FlagBits(name string) (Bits, bool) {
	bits, ok := catalog[name]
	return bits, ok
}
