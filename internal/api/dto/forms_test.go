package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	ok := LoginRequest{Username: " bob ", Password: "pw"}
	assert.NoError(t, ok.Validate())
	assert.Equal(t, "bob", ok.Username)

	for _, r := range []LoginRequest{{}, {Username: "bob"}, {Password: "pw"}, {Username: "   ", Password: "pw"}} {
		assert.Error(t, r.Validate())
	}
}

func TestModeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ModeRequest{Mode: "apply"}).Validate())
	assert.NoError(t, (&ModeRequest{Mode: " survey "}).Validate())
	assert.Error(t, (&ModeRequest{Mode: "login"}).Validate())
	assert.Error(t, (&ModeRequest{}).Validate())
}

func TestApplicationRequest_Normalize(t *testing.T) {
	r := ApplicationRequest{FullName: "  Jane Doe ", Skills: "\tgo\n"}
	r.Normalize()
	assert.Equal(t, "Jane Doe", r.FullName)
	assert.Equal(t, "go", r.Skills)
}

func TestNewApplicantsResponse_EmptyIsArray(t *testing.T) {
	resp := NewApplicantsResponse(nil)
	assert.NotNil(t, resp.Data)
	assert.Zero(t, resp.Count)
}
