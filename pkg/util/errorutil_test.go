package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewConflict("email already in use", map[string]any{"email": "a@b.c"})

	mapped := ToDomainError(fmt.Errorf("register: %w", original))
	if mapped.Code != "CONFLICT" || mapped.HTTPStatus != http.StatusConflict {
		t.Fatalf("wrapped DomainError must survive mapping, got %+v", mapped)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(sql.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("ErrNoRows must map to NOT_FOUND, got %+v", mapped)
	}
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown errors must map to INTERNAL_ERROR, got %+v", mapped)
	}
	if !errors.Is(mapped, mapped.Err) {
		t.Fatal("mapped error must wrap the original")
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("nil maps to nil")
	}
}

func TestConstructorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("event", nil), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{NewPendingApproval("wait"), "PENDING_APPROVAL", http.StatusForbidden},
		{NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{NewCapacityExceeded("e1"), "CAPACITY_EXCEEDED", http.StatusConflict},
		{NewAlreadyRegistered("e1"), "ALREADY_REGISTERED", http.StatusConflict},
		{NewNotRegistered("e1"), "NOT_REGISTERED", http.StatusConflict},
	}
	for _, tc := range cases {
		var domainErr *DomainError
		if !errors.As(tc.err, &domainErr) {
			t.Fatalf("%v is not a DomainError", tc.err)
		}
		if domainErr.Code != tc.code || domainErr.HTTPStatus != tc.status {
			t.Fatalf("expected %s/%d, got %s/%d", tc.code, tc.status, domainErr.Code, domainErr.HTTPStatus)
		}
	}
}
