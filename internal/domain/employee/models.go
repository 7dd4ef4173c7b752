package employee

import "time"

type DepartmentRef struct {
	ID   int64
	Name string
	Code string
}

type PositionRef struct {
	ID    int64
	Title string
	Level string
}

type ManagerRef struct {
	ID           int64
	EmployeeCode string
	FirstName    string
	LastName     string
}

func (m ManagerRef) FullName() string {
	return FullName(m.FirstName, m.LastName)
}

type Employee struct {
	ID                    int64
	EmployeeCode          string
	FirstName             string
	LastName              string
	Email                 string
	Phone                 *string
	DateOfBirth           *time.Time
	Gender                *string
	Address               *string
	DepartmentID          *int64
	PositionID            *int64
	ManagerID             *int64
	HireDate              time.Time
	TerminationDate       *time.Time
	EmploymentType        string
	Status                string
	Salary                *float64
	EmergencyContactName  *string
	EmergencyContactPhone *string
	Skills                []string
	Notes                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Department *DepartmentRef
	Position   *PositionRef
	Manager    *ManagerRef
}

func (e Employee) FullName() string {
	return FullName(e.FirstName, e.LastName)
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

func FullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

type Filter struct {
	DepartmentID   int64
	PositionID     int64
	Status         string
	EmploymentType string
	Search         string
}

type DepartmentCount struct {
	DepartmentID   *int64
	DepartmentName string
	Count          int64
}
