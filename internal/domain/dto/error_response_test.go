package dto

import (
	"errors"
	"testing"
)

func TestErrorResponse_Error(t *testing.T) {
	e := ErrorResponse{Message: "oops"}
	if e.Error() != "oops" {
		t.Fatalf("Error()=%q, want 'oops'", e.Error())
	}
	e2 := ErrorResponse{Message: "oops", ErrorDetails: "bad"}
	if e2.Error() != "oops: bad" {
		t.Fatalf("Error()=%q, want 'oops: bad'", e2.Error())
	}
}

func TestNewErrorResponse(t *testing.T) {
	e := NewErrorResponse("msg", nil)
	if e.Message != "msg" || e.ErrorDetails != "" {
		t.Fatalf("unexpected response: %+v", e)
	}

	err := errors.New("boom")
	e2 := NewErrorResponse("msg", err)
	if e2.Message != "msg" || e2.ErrorDetails != "boom" {
		t.Fatalf("unexpected response: %+v", e2)
	}
}
