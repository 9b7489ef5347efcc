package schemas

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
)

const emailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

// Employee is the employee registration form. Employment details are shown
// for employed applicants and the job search status for everyone else.
func Employee() *schema.Schema {
	employed := model.When("isEmployed", "yes")
	unemployed := model.When("isEmployed", "no")

	return &schema.Schema{
		Key:   EmployeeKey,
		Title: "Employee Registration Form",
		Fields: []model.Field{
			{
				Name:        "firstName",
				Type:        model.FieldTypeText,
				Label:       "First Name",
				Placeholder: "Enter your first name",
				Rules:       model.Rules{Required: true, MinLength: model.Int(2)},
			},
			{
				Name:        "lastName",
				Type:        model.FieldTypeText,
				Label:       "Last Name",
				Placeholder: "Enter your last name",
				Rules:       model.Rules{Required: true, MinLength: model.Int(2)},
			},
			{
				Name:        "email",
				Type:        model.FieldTypeEmail,
				Label:       "Email Address",
				Placeholder: "Enter your email",
				Rules:       model.Rules{Required: true, Pattern: emailPattern},
			},
			{
				Name:  "isEmployed",
				Type:  model.FieldTypeRadio,
				Label: "Employment Status",
				Options: []model.Option{
					{Value: "yes", Label: "Currently Employed"},
					{Value: "no", Label: "Not Employed"},
				},
				Rules: model.Rules{Required: true},
			},
			{
				Name:        "companyName",
				Type:        model.FieldTypeText,
				Label:       "Company Name",
				Placeholder: "Enter company name",
				Condition:   employed,
				Rules:       model.Rules{Required: true},
			},
			{
				Name:      "position",
				Type:      model.FieldTypeSelect,
				Label:     "Position",
				Condition: employed,
				Options: []model.Option{
					{Value: "", Label: "Select Position"},
					{Value: "developer", Label: "Software Developer"},
					{Value: "designer", Label: "UI/UX Designer"},
					{Value: "manager", Label: "Project Manager"},
					{Value: "analyst", Label: "Business Analyst"},
				},
				Rules: model.Rules{Required: true},
			},
			{
				Name:        "experience",
				Type:        model.FieldTypeNumber,
				Label:       "Years of Experience",
				Placeholder: "Enter years of experience",
				Condition:   employed,
				Rules:       model.Rules{Required: true, Min: model.Float(0), Max: model.Float(50)},
			},
			{
				Name:      "skills",
				Type:      model.FieldTypeCheckbox,
				Label:     "Technical Skills",
				Condition: employed,
				Options: []model.Option{
					{Value: "javascript", Label: "JavaScript"},
					{Value: "react", Label: "React"},
					{Value: "nodejs", Label: "Node.js"},
					{Value: "python", Label: "Python"},
					{Value: "java", Label: "Java"},
				},
			},
			{
				Name:      "lookingForJob",
				Type:      model.FieldTypeSelect,
				Label:     "Job Search Status",
				Condition: unemployed,
				Options: []model.Option{
					{Value: "", Label: "Select Status"},
					{Value: "actively", Label: "Actively Looking"},
					{Value: "casually", Label: "Casually Looking"},
					{Value: "not-looking", Label: "Not Looking"},
				},
				Rules: model.Rules{Required: true},
			},
		},
		Validator: schema.Refine(
			schema.Require("firstName", "First Name is required"),
			filled(schema.MinLength("firstName", 2, "First Name must be at least 2 characters")),
			schema.Require("lastName", "Last Name is required"),
			filled(schema.MinLength("lastName", 2, "Last Name must be at least 2 characters")),
			schema.Require("email", "Email Address is required"),
			filled(schema.Email("email", "Invalid email address")),
			schema.OneOf("isEmployed", []string{"yes", "no"}, "Employment Status is required"),
			schema.NumberBetween("experience", 0, 50, "Experience must be between 0 and 50"),
		).When(employed,
			schema.Require("companyName", "Company Name is required"),
			schema.Require("position", "Position is required"),
			schema.RequireNumber("experience", "Experience is required"),
		).When(unemployed,
			schema.Require("lookingForJob", "Job Search Status is required"),
		),
	}
}

// filled skips c while the value is blank so only the required message shows.
func filled(c schema.Constraint) schema.Constraint {
	inner := c.Violated
	return schema.Custom(c.Field, c.Message, func(value model.Value, values model.Values) bool {
		if strings.TrimSpace(value.Text()) == "" {
			return false
		}
		return inner(value, values)
	})
}
