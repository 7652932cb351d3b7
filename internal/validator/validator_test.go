package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func testContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindValid(t *testing.T) {
	Setup()

	c := testContext(t, `{"email":"student@acadex.edu","password":"supersecret"}`)
	var dst loginPayload
	if fields := Bind(c, &dst); fields != nil {
		t.Fatalf("Bind() returned errors for valid payload: %v", fields)
	}
	if dst.Email != "student@acadex.edu" {
		t.Errorf("Email = %q after bind", dst.Email)
	}
}

func TestBindFieldErrors(t *testing.T) {
	Setup()

	c := testContext(t, `{"email":"not-an-email","password":"short"}`)
	var dst loginPayload
	fields := Bind(c, &dst)
	if fields == nil {
		t.Fatal("Bind() accepted invalid payload")
	}
	// Keys come from json tags, not Go field names.
	if _, ok := fields["email"]; !ok {
		t.Errorf("missing error for email, got %v", fields)
	}
	if _, ok := fields["password"]; !ok {
		t.Errorf("missing error for password, got %v", fields)
	}
}

func TestBindMalformedJSON(t *testing.T) {
	Setup()

	c := testContext(t, `{"email":`)
	var dst loginPayload
	fields := Bind(c, &dst)
	if fields == nil {
		t.Fatal("Bind() accepted malformed JSON")
	}
	if _, ok := fields["detail"]; !ok {
		t.Errorf("malformed JSON should map to detail, got %v", fields)
	}
}
