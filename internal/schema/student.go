package schema

import (
	"github.com/aanand-mishra/student-records/internal/types"
)

// Allowed enum values.
var (
	Genders       = []string{"male", "female", "other"}
	BloodGroups   = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	AccountStatus = []string{types.StatusActive, types.StatusBlocked}
)

func requiredString(message string) Node {
	return Scalar(Required()).WithMessages(map[Code]string{MissingField: message})
}

func requiredComposite(message string, fields ...Field) Node {
	return Composite(fields...).WithMessages(map[Code]string{MissingField: message})
}

var userNameSchema = Composite(
	F("firstName", Scalar(Required(), MaxLength(20), CapitalizedFirstLetter()).
		WithMessages(map[Code]string{
			MissingField:   "First Name is Required",
			TooLong:        "First Name should not be more than 20 letters",
			NotCapitalized: "{value} is not capitalized Format",
		})),
	F("middleName", Scalar().AsOptional()),
	F("lastName", Scalar(Required(), AlphabeticOnly()).
		WithMessages(map[Code]string{
			MissingField:  "Last Name is Required",
			InvalidFormat: "{value} is not valid",
		})),
)

var guardianSchema = Composite(
	F("fatherName", requiredString("Father Name is Required")),
	F("fatherOccupation", requiredString("Father Occupation is Required")),
	F("fatherContactNo", requiredString("Father Contact No is Required")),
	F("motherName", requiredString("Mother Name is Required")),
	F("motherOccupation", requiredString("Mother Occupation is Required")),
	F("motherContactNo", requiredString("Mother Contact No is Required")),
)

var localGuardianSchema = Composite(
	F("name", requiredString("Local Guardian Name is Required")),
	F("occupation", requiredString("Local Guardian Occupation is Required")),
	F("contactNo", requiredString("Local Guardian Contact No is Required")),
	F("address", requiredString("Local Guardian Address is Required")),
)

// StudentSchema is the single definition of a valid student payload. Both
// the Record Service and the stores rely on records that passed it.
var StudentSchema = Composite(
	F("id", requiredString("Student ID is Required")),
	F("name", requiredComposite("Student Name is Required", userNameSchema.Fields...)),
	F("gender", Scalar(Required(), EnumMember(Genders...)).
		WithMessages(map[Code]string{
			MissingField:  "Gender is Required",
			InvalidFormat: `{value} is not valid. Gender must be either "male", "female", or "other"`,
		})),
	F("dateOfBirth", requiredString("Date of Birth is Required")),
	F("email", Scalar(Required(), EmailShape()).
		WithMessages(map[Code]string{
			MissingField:  "Email is Required",
			InvalidFormat: "{value} is not a valid email type",
		})),
	F("contactNo", requiredString("Contact Number is Required")),
	F("emergencyContactNo", requiredString("Emergency Contact Number is Required")),
	F("bloodGroup", Scalar(Required(), EnumMember(BloodGroups...)).
		WithMessages(map[Code]string{
			MissingField:  "Blood Group is Required",
			InvalidFormat: `Blood Group must be one of "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"`,
		})),
	F("presentAddress", requiredString("Present Address is Required")),
	F("permanentAddress", requiredString("Permanent Address is Required")),
	F("guardian", requiredComposite("Guardian Information is Required", guardianSchema.Fields...)),
	F("localGuardian", requiredComposite("Local Guardian Information is Required", localGuardianSchema.Fields...)),
	F("profileImg", requiredString("Profile Image is Required")),
	F("isActive", Scalar(Required(), EnumMember(AccountStatus...)).
		WithDefault(types.StatusActive).
		WithMessages(map[Code]string{
			MissingField:  "Account Status is Required",
			InvalidFormat: `Account status must be either "active" or "blocked"`,
		})),
)

// ValidateStudent runs StudentSchema over raw and returns the normalized
// student. On failure the error is an Errors value. A nil payload is
// treated as an empty object so every required field is reported.
func ValidateStudent(raw any) (types.Student, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	out, errs := StudentSchema.Validate(raw)
	if len(errs) > 0 {
		return types.Student{}, errs
	}
	return studentFromDoc(out.(map[string]any)), nil
}

// studentFromDoc maps a normalized document onto the typed record. The
// document has already passed StudentSchema, so every required key holds
// a string.
func studentFromDoc(doc map[string]any) types.Student {
	name := obj(doc, "name")
	guardian := obj(doc, "guardian")
	local := obj(doc, "localGuardian")
	return types.Student{
		ID: str(doc, "id"),
		Name: types.UserName{
			FirstName:  str(name, "firstName"),
			MiddleName: str(name, "middleName"),
			LastName:   str(name, "lastName"),
		},
		Gender:             str(doc, "gender"),
		DateOfBirth:        str(doc, "dateOfBirth"),
		Email:              str(doc, "email"),
		ContactNo:          str(doc, "contactNo"),
		EmergencyContactNo: str(doc, "emergencyContactNo"),
		BloodGroup:         str(doc, "bloodGroup"),
		PresentAddress:     str(doc, "presentAddress"),
		PermanentAddress:   str(doc, "permanentAddress"),
		Guardian: types.Guardian{
			FatherName:       str(guardian, "fatherName"),
			FatherOccupation: str(guardian, "fatherOccupation"),
			FatherContactNo:  str(guardian, "fatherContactNo"),
			MotherName:       str(guardian, "motherName"),
			MotherOccupation: str(guardian, "motherOccupation"),
			MotherContactNo:  str(guardian, "motherContactNo"),
		},
		LocalGuardian: types.LocalGuardian{
			Name:       str(local, "name"),
			Occupation: str(local, "occupation"),
			ContactNo:  str(local, "contactNo"),
			Address:    str(local, "address"),
		},
		ProfileImg: str(doc, "profileImg"),
		IsActive:   str(doc, "isActive"),
	}
}

func obj(doc map[string]any, key string) map[string]any {
	m, _ := doc[key].(map[string]any)
	return m
}

func str(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}
