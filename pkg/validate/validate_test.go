package validate_test

import (
	"testing"

	"github.com/groovecrate/vinylstore/pkg/validate"
)

type createProductInput struct {
	Name     string   `json:"name"     validate:"required,min=1,max=200"`
	Artist   string   `json:"artist"   validate:"nullable,max=200"`
	Link     string   `json:"link"     validate:"nullable,url"`
	Price    *float64 `json:"price"    validate:"required,gte=0"`
	Quantity *int     `json:"quantity" validate:"nullable,gte=0"`
}

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(createProductInput{
		Name:     "Kind of Blue",
		Artist:   "Miles Davis",
		Link:     "https://example.com/kind-of-blue",
		Price:    f64(29.99),
		Quantity: i(3),
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(createProductInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected price to be required")
	}
}

func TestNegativePriceRejected(t *testing.T) {
	errs := validate.Struct(createProductInput{Name: "LP", Price: f64(-1)})
	if _, ok := errs["price"]; !ok {
		t.Errorf("expected price error, got: %v", errs)
	}
}

func TestNilPointerIsNullable(t *testing.T) {
	errs := validate.Struct(createProductInput{Name: "LP", Price: f64(0)})
	if validate.HasErrors(errs) {
		t.Errorf("nil quantity should pass nullable, got: %v", errs)
	}
}

func TestNegativeQuantityRejected(t *testing.T) {
	errs := validate.Struct(createProductInput{Name: "LP", Price: f64(1), Quantity: i(-2)})
	if _, ok := errs["quantity"]; !ok {
		t.Errorf("expected quantity error, got: %v", errs)
	}
}

func TestURLRule(t *testing.T) {
	errs := validate.Struct(createProductInput{Name: "LP", Price: f64(1), Link: "not a url"})
	if _, ok := errs["link"]; !ok {
		t.Error("expected link validation error")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "admin@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}
