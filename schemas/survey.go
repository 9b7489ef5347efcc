package schemas

import (
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Survey is the customer feedback survey. Existing customers are asked how
// often they buy, new customers how they found us, and anyone not satisfied
// which areas need work.
func Survey() *schema.Schema {
	return &schema.Schema{
		Key:   SurveyKey,
		Title: "Customer Feedback Survey",
		Fields: []model.Field{
			{
				Name:  "customerType",
				Type:  model.FieldTypeRadio,
				Label: "Customer Type",
				Options: []model.Option{
					{Value: "new", Label: "New Customer"},
					{Value: "existing", Label: "Existing Customer"},
				},
				Rules: model.Rules{Required: true},
			},
			{
				Name:      "purchaseFrequency",
				Type:      model.FieldTypeSelect,
				Label:     "How often do you purchase from us?",
				Condition: model.When("customerType", "existing"),
				Options: []model.Option{
					{Value: "", Label: "Select Frequency"},
					{Value: "weekly", Label: "Weekly"},
					{Value: "monthly", Label: "Monthly"},
					{Value: "quarterly", Label: "Quarterly"},
					{Value: "yearly", Label: "Yearly"},
				},
				Rules: model.Rules{Required: true},
			},
			{
				Name:      "referralSource",
				Type:      model.FieldTypeSelect,
				Label:     "How did you hear about us?",
				Condition: model.When("customerType", "new"),
				Options: []model.Option{
					{Value: "", Label: "Select Source"},
					{Value: "social-media", Label: "Social Media"},
					{Value: "friend", Label: "Friend/Family"},
					{Value: "advertisement", Label: "Advertisement"},
					{Value: "search-engine", Label: "Search Engine"},
				},
				Rules: model.Rules{Required: true},
			},
			{
				Name:  "satisfaction",
				Type:  model.FieldTypeRadio,
				Label: "Overall Satisfaction",
				Options: []model.Option{
					{Value: "very-satisfied", Label: "Very Satisfied"},
					{Value: "satisfied", Label: "Satisfied"},
					{Value: "neutral", Label: "Neutral"},
					{Value: "dissatisfied", Label: "Dissatisfied"},
				},
				Rules: model.Rules{Required: true},
			},
			{
				Name:      "improvements",
				Type:      model.FieldTypeCheckbox,
				Label:     "What areas need improvement?",
				Condition: model.WhenIn("satisfaction", "neutral", "dissatisfied"),
				Options: []model.Option{
					{Value: "customer-service", Label: "Customer Service"},
					{Value: "product-quality", Label: "Product Quality"},
					{Value: "pricing", Label: "Pricing"},
					{Value: "delivery", Label: "Delivery Speed"},
					{Value: "website", Label: "Website Experience"},
				},
			},
		},
		Validator: schema.Refine(
			schema.OneOf("customerType", []string{"new", "existing"}, "Customer Type is required"),
			schema.OneOf("satisfaction", []string{"very-satisfied", "satisfied", "neutral", "dissatisfied"}, "Satisfaction rating is required"),
			schema.RequireWhen("customerType", []string{"existing"}, "purchaseFrequency", "Purchase Frequency is required for existing customers"),
			schema.RequireWhen("customerType", []string{"new"}, "referralSource", "Referral Source is required for new customers"),
			schema.RequireSelectionWhen("satisfaction", []string{"neutral", "dissatisfied"}, "improvements", "Please select at least one area for improvement"),
		),
	}
}
