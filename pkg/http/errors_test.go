package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := BadRequestError("invalid range").WithError(cause).WithParam("from", 42)

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}

	var appErr *AppError
	if !errors.As(error(err), &appErr) {
		t.Fatal("expected errors.As to find *AppError")
	}
	if appErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", appErr.Status)
	}
	if appErr.Params["from"] != 42 {
		t.Fatalf("params = %v", appErr.Params)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("no candles in range")
	if err.Status != http.StatusNotFound || err.Code != "ERR_NOT_FOUND" {
		t.Fatalf("unexpected error: %+v", err)
	}
}
