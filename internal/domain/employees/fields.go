package employees

// View names the projection tiers a caller's permissions grant. The record
// read is always the full row; redaction happens before it leaves the
// service.
type View string

const (
	ViewSensitive View = "sensitive"
	ViewBasic     View = "basic"
	ViewContact   View = "contact"
)

// RedactForView strips the fields above the caller's tier.
func RedactForView(emp *Employee, view View) {
	switch view {
	case ViewSensitive:
		return
	case ViewBasic:
		clearSensitive(emp)
	default:
		clearSensitive(emp)
		clearBasic(emp)
	}
}

func clearSensitive(emp *Employee) {
	emp.Salary = nil
	emp.BankAccount = ""
	emp.NationalID = ""
}

func clearBasic(emp *Employee) {
	emp.RoleID = ""
	emp.Type = ""
	emp.Status = ""
	emp.Location = ""
	emp.JoinedOn = nil
	emp.ContractEnd = nil
	emp.LeftOn = nil
	emp.PersonalEmail = ""
	emp.PersonalPhone = ""
}
