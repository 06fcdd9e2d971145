package val_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/bucketfs/val"
)

type item struct {
	Path     string `json:"path"     validate:"required,vpath"`
	IsFolder bool   `json:"isFolder"`
}

type moveRequest struct {
	Items      []item `json:"items"      validate:"required,min=1,dive"`
	TargetPath string `json:"targetPath" validate:"vprefix"`
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name       string
		req        moveRequest
		wantFields map[string]string
	}{
		{
			name: "valid",
			req:  moveRequest{Items: []item{{Path: "a/b.txt"}, {Path: "c/", IsFolder: true}}, TargetPath: "dst/"},
		},
		{
			name: "valid root target",
			req:  moveRequest{Items: []item{{Path: "a.txt"}}},
		},
		{
			name:       "no items",
			req:        moveRequest{Items: []item{}, TargetPath: "dst/"},
			wantFields: map[string]string{"items": "Must contain at least 1 items"},
		},
		{
			name:       "traversal in item",
			req:        moveRequest{Items: []item{{Path: "ok"}, {Path: "a/../b"}}, TargetPath: "dst/"},
			wantFields: map[string]string{"items[1].path": "Must be a relative path without empty, '.' or '..' segments"},
		},
		{
			name:       "target without trailing slash",
			req:        moveRequest{Items: []item{{Path: "a"}}, TargetPath: "dst"},
			wantFields: map[string]string{"targetPath": "Must be empty or a relative folder path ending with '/'"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := val.ValidateSchema(tc.req)
			if tc.wantFields == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			e := errx.AsErrorX(err)
			assert.Equal(t, val.CodeValidationFailed, e.Code())
			assert.Equal(t, errx.T_Validation, e.Type())
			for field, desc := range tc.wantFields {
				assert.Equal(t, desc, e.Fields()[field])
			}
		})
	}
}

func TestIsVirtualPrefix(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "", want: true},
		{path: "a/", want: true},
		{path: "a/b/", want: true},
		{path: "a", want: false},
		{path: "/a/", want: false},
		{path: "a//", want: false},
		{path: "../", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, val.IsVirtualPrefix(tc.path))
		})
	}
}
