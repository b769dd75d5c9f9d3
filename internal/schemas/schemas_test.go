package schemas

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/petween/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.True(t, stderrors.As(err, &ve), "expected *ValidationError, got %v", err)

	out := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		out[f.Field] = f.Error
	}
	return out
}

func TestCreateUserRequest_Validate(t *testing.T) {
	req := &CreateUserRequest{Name: "  <i>Alice</i> "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Alice", req.Name)

	empty := &CreateUserRequest{Name: "<p></p>"}
	fields := fieldErrors(t, empty.Validate())
	assert.Equal(t, "is required", fields["name"])

	long := &CreateUserRequest{Name: strings.Repeat("x", 256)}
	fields = fieldErrors(t, long.Validate())
	assert.Equal(t, "must not exceed 255 characters", fields["name"])
}

func TestCreatePetRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        CreatePetRequest
		wantFields map[string]string
	}{
		{
			name: "Valid",
			req:  CreatePetRequest{Name: "Bulki", Species: "Cat", Chunky: 80, Size: 10},
		},
		{
			name: "Valid with owners",
			req:  CreatePetRequest{Name: "Vivi", Species: "Dino", OwnerIDs: []uint{1, 2}},
		},
		{
			name: "Missing name and species",
			req:  CreatePetRequest{},
			wantFields: map[string]string{
				"name":    "is required",
				"species": "is required",
			},
		},
		{
			name: "Negative attributes",
			req:  CreatePetRequest{Name: "Nala", Species: "Frog", Chunky: -1, Size: -5},
			wantFields: map[string]string{
				"chunky": "must be at least 0",
				"size":   "must be at least 0",
			},
		},
		{
			name: "Zero owner id",
			req:  CreatePetRequest{Name: "Cali", Species: "Cat", OwnerIDs: []uint{3, 0}},
			wantFields: map[string]string{
				"owner_ids[1]": "must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := req.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldErrors(t, err))
		})
	}
}

func TestAddFriendRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AddFriendRequest{FriendID: 4}).Validate())

	fields := fieldErrors(t, (&AddFriendRequest{}).Validate())
	assert.Equal(t, "is required", fields["friend_id"])
}

func TestUserOut_JSON(t *testing.T) {
	image := "uploads/eva.png"

	withImage, err := json.Marshal(NewUserOut(models.User{ID: 3, Name: "Eva", ProfileImage: &image}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Eva","profile_image":"uploads/eva.png"}`, string(withImage))

	withoutImage, err := json.Marshal(NewUserOut(models.User{ID: 4, Name: "Kate"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"name":"Kate","profile_image":null}`, string(withoutImage))
}

func TestPetDetailOut_JSON(t *testing.T) {
	detail := NewPetDetailOut(
		models.Pet{ID: 1, Name: "Bulki", Species: "Cat", Chunky: 80, Size: 10},
		[]models.User{{ID: 2, Name: "Alice"}},
	)

	data, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1,"name":"Bulki","species":"Cat","chunky":80,"size":10,"owners":[{"id":2,"name":"Alice","profile_image":null}]}`,
		string(data))

	empty, err := json.Marshal(NewPetList(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
