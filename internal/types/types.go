// Package types holds all shared data structures (models) used across
// the application. schema, storage, service and handlers all import
// types; types imports none of them.
package types

// Account status values for Student.IsActive.
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// Student represents a student record in our system.
//
// The json:"..." tags are the wire contract: they match the field names
// clients send and the document layout persisted by every store. Do not
// rename them.
type Student struct {
	ID                 string        `json:"id"`
	Name               UserName      `json:"name"`
	Gender             string        `json:"gender"`
	DateOfBirth        string        `json:"dateOfBirth"`
	Email              string        `json:"email"`
	ContactNo          string        `json:"contactNo"`
	EmergencyContactNo string        `json:"emergencyContactNo"`
	BloodGroup         string        `json:"bloodGroup"`
	PresentAddress     string        `json:"presentAddress"`
	PermanentAddress   string        `json:"permanentAddress"`
	Guardian           Guardian      `json:"guardian"`
	LocalGuardian      LocalGuardian `json:"localGuardian"`
	ProfileImg         string        `json:"profileImg"`
	IsActive           string        `json:"isActive"`
}

// UserName is the composite student name.
type UserName struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
}

// Guardian holds parent details.
type Guardian struct {
	FatherName       string `json:"fatherName"`
	FatherOccupation string `json:"fatherOccupation"`
	FatherContactNo  string `json:"fatherContactNo"`
	MotherName       string `json:"motherName"`
	MotherOccupation string `json:"motherOccupation"`
	MotherContactNo  string `json:"motherContactNo"`
}

// LocalGuardian holds details of the guardian living near the school.
type LocalGuardian struct {
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
	ContactNo  string `json:"contactNo"`
	Address    string `json:"address"`
}

// StoredStudent is a Student as returned by a store.
//
// ObjectID is the storage-assigned identity; it is NOT the business key.
// Lookups always go through Student.ID.
type StoredStudent struct {
	ObjectID string `json:"_id"`
	Student
}
