package domain

// Project is a housing scheme/phase. Its Code prefixes booking numbers and
// every account, plot and booking is scoped to exactly one project.
type Project struct {
	ProjectID string `json:"projectID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// Customer is a buyer registered within a project.
type Customer struct {
	CustomerID string `json:"customerID"`
	ProjectID  string `json:"projectID"`
	Name       string `json:"name"`
	FatherName string `json:"fatherName"`
	CNIC       string `json:"cnic"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	AuditFields
}
