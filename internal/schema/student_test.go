package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/types"
)

func validPayload() map[string]any {
	return map[string]any{
		"id": "  S-1 ",
		"name": map[string]any{
			"firstName":  "John",
			"middleName": " Quincy ",
			"lastName":   "Doe",
		},
		"gender":             "male",
		"dateOfBirth":        "2001-04-12",
		"email":              " john@school.edu ",
		"contactNo":          "0123",
		"emergencyContactNo": "0456",
		"bloodGroup":         "AB+",
		"presentAddress":     "1 Main St",
		"permanentAddress":   "2 Side St",
		"guardian": map[string]any{
			"fatherName":       "Jack",
			"fatherOccupation": "Pilot",
			"fatherContactNo":  "111",
			"motherName":       "Jane",
			"motherOccupation": "Surgeon",
			"motherContactNo":  "222",
		},
		"localGuardian": map[string]any{
			"name":       "Ann",
			"occupation": "Teacher",
			"contactNo":  "333",
			"address":    "3 Hill Rd",
		},
		"profileImg": "https://img.example.com/john.png",
		"isActive":   "blocked",
	}
}

func TestValidateStudentNormalizes(t *testing.T) {
	got, err := ValidateStudent(validPayload())
	require.NoError(t, err)

	want := types.Student{
		ID:                 "S-1",
		Name:               types.UserName{FirstName: "John", MiddleName: "Quincy", LastName: "Doe"},
		Gender:             "male",
		DateOfBirth:        "2001-04-12",
		Email:              "john@school.edu",
		ContactNo:          "0123",
		EmergencyContactNo: "0456",
		BloodGroup:         "AB+",
		PresentAddress:     "1 Main St",
		PermanentAddress:   "2 Side St",
		Guardian: types.Guardian{
			FatherName: "Jack", FatherOccupation: "Pilot", FatherContactNo: "111",
			MotherName: "Jane", MotherOccupation: "Surgeon", MotherContactNo: "222",
		},
		LocalGuardian: types.LocalGuardian{Name: "Ann", Occupation: "Teacher", ContactNo: "333", Address: "3 Hill Rd"},
		ProfileImg:    "https://img.example.com/john.png",
		IsActive:      types.StatusBlocked,
	}
	assert.Equal(t, want, got)
}

func TestValidateStudentDefaultsAndExtras(t *testing.T) {
	p := validPayload()
	delete(p, "isActive")
	delete(p["name"].(map[string]any), "middleName")
	p["nickname"] = "JD"
	p["guardian"].(map[string]any)["uncleName"] = "Bob"

	got, err := ValidateStudent(p)
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, got.IsActive)
	assert.Empty(t, got.Name.MiddleName)
}

func TestValidateStudentFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p map[string]any)
		path   string
		code   Code
	}{
		{"lower first name", func(p map[string]any) { p["name"].(map[string]any)["firstName"] = "john" }, "name.firstName", NotCapitalized},
		{"upper first name", func(p map[string]any) { p["name"].(map[string]any)["firstName"] = "JOHN" }, "name.firstName", NotCapitalized},
		{"long first name", func(p map[string]any) { p["name"].(map[string]any)["firstName"] = "Abcdefghijklmnopqrstu" }, "name.firstName", TooLong},
		{"numeric last name", func(p map[string]any) { p["name"].(map[string]any)["lastName"] = "D0e" }, "name.lastName", InvalidFormat},
		{"bad email", func(p map[string]any) { p["email"] = "not-an-email" }, "email", InvalidFormat},
		{"bad gender", func(p map[string]any) { p["gender"] = "unknown" }, "gender", InvalidFormat},
		{"bad blood group", func(p map[string]any) { p["bloodGroup"] = "Z+" }, "bloodGroup", InvalidFormat},
		{"bad status", func(p map[string]any) { p["isActive"] = "deleted" }, "isActive", InvalidFormat},
		{"blank id", func(p map[string]any) { p["id"] = "   " }, "id", MissingField},
		{"missing guardian", func(p map[string]any) { delete(p, "guardian") }, "guardian", MissingField},
		{"missing local guardian field", func(p map[string]any) { delete(p["localGuardian"].(map[string]any), "address") }, "localGuardian.address", MissingField},
		{"missing profile image", func(p map[string]any) { delete(p, "profileImg") }, "profileImg", MissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)
			_, err := ValidateStudent(p)
			errs, ok := AsErrors(err)
			require.True(t, ok)
			assert.Len(t, errs, 1)
			assert.True(t, errs.Has(tt.path, tt.code), "got %v", errs)
		})
	}
}

func TestValidateStudentCollectsAllFailures(t *testing.T) {
	p := validPayload()
	p["name"].(map[string]any)["firstName"] = "john"
	p["email"] = "nope"
	delete(p, "guardian")

	_, err := ValidateStudent(p)
	errs, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, Errors{
		{Path: "name.firstName", Code: NotCapitalized, Message: "john is not capitalized Format"},
		{Path: "email", Code: InvalidFormat, Message: "nope is not a valid email type"},
		{Path: "guardian", Code: MissingField, Message: "Guardian Information is Required"},
	}, errs)
}

func TestValidateStudentNilPayload(t *testing.T) {
	_, err := ValidateStudent(nil)
	errs, ok := AsErrors(err)
	require.True(t, ok)
	// every required top-level field; isActive has a default
	assert.Len(t, errs, 13)
	assert.True(t, errs.Has("id", MissingField))
	assert.True(t, errs.Has("name", MissingField))
	assert.False(t, errs.Has("isActive", MissingField))
}

func TestValidateStudentIsPure(t *testing.T) {
	p := validPayload()
	p["gender"] = "unknown"
	_, first := ValidateStudent(p)
	_, second := ValidateStudent(p)
	assert.Equal(t, first, second)

	ok1, err := ValidateStudent(validPayload())
	require.NoError(t, err)
	ok2, err := ValidateStudent(validPayload())
	require.NoError(t, err)
	assert.Equal(t, ok1, ok2)
}
