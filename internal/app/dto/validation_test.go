package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := registerEnums(v); err != nil {
		t.Fatalf("registerEnums: %v", err)
	}
	return v
}

func ptr(v float64) *float64 { return &v }

func TestBulkPriceRequestValidation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		req     BulkPriceRequest
		wantErr bool
	}{
		{"discount", BulkPriceRequest{Operation: "discount", Value: ptr(10)}, false},
		{"markup with ids", BulkPriceRequest{Operation: "markup", Value: ptr(5), IDs: []uint{1, 2}}, false},
		{"set zero", BulkPriceRequest{Operation: "set", Value: ptr(0)}, false},
		{"unknown operation", BulkPriceRequest{Operation: "double", Value: ptr(1)}, true},
		{"missing operation", BulkPriceRequest{Value: ptr(1)}, true},
		{"negative value", BulkPriceRequest{Operation: "markup", Value: ptr(-1)}, true},
		{"missing value", BulkPriceRequest{Operation: "set", IDs: []uint{1, 2}}, true},
		{"duplicate ids", BulkPriceRequest{Operation: "set", Value: ptr(1), IDs: []uint{3, 3}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBulkPriceRequestDecodedWithoutValue(t *testing.T) {
	v := newValidator(t)

	var req BulkPriceRequest
	if err := json.Unmarshal([]byte(`{"operation":"set","ids":[1,2]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Value != nil {
		t.Fatalf("expected absent value to stay nil, got %v", *req.Value)
	}
	if err := v.Struct(req); err == nil {
		t.Error("expected set without value to be rejected")
	}

	if err := json.Unmarshal([]byte(`{"operation":"set","value":0,"ids":[1]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := v.Struct(req); err != nil {
		t.Errorf("expected explicit zero to be accepted, got %v", err)
	}
}

func TestEnumValidators(t *testing.T) {
	v := newValidator(t)

	if err := v.Struct(UpdateCollegeStatusRequest{Status: "negotiation"}); err != nil {
		t.Errorf("expected negotiation to be valid, got %v", err)
	}
	if err := v.Struct(UpdateCollegeStatusRequest{Status: "archived"}); err == nil {
		t.Error("expected archived to be rejected")
	}

	stage := "won"
	if err := v.Struct(UpdateDealRequest{Stage: &stage}); err == nil {
		t.Error("expected unknown deal stage to be rejected")
	}
	stage = "closed_won"
	if err := v.Struct(UpdateDealRequest{Stage: &stage}); err != nil {
		t.Errorf("expected closed_won to be valid, got %v", err)
	}
}

func TestValidationMessage(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(UpdateCollegeStatusRequest{Status: "archived"})
	msg := ValidationMessage(err)
	if !strings.Contains(msg, "status must be one of") {
		t.Errorf("expected enum message, got %q", msg)
	}

	err = v.Struct(CreateDealRequest{Title: "x", Probability: 150})
	msg = ValidationMessage(err)
	if !strings.Contains(msg, "college_id is required") && !strings.Contains(msg, "collegeid is required") {
		t.Errorf("expected required message, got %q", msg)
	}
	if !strings.Contains(msg, "at most 100") {
		t.Errorf("expected range message, got %q", msg)
	}
}
