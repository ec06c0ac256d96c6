package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRecord_UnmarshalJSON(t *testing.T) {
	t.Run("keeps unknown fields opaque", func(t *testing.T) {
		var u UserRecord
		err := json.Unmarshal([]byte(`{"id":7,"username":"alice","theme":"dark","beta":true}`), &u)
		require.NoError(t, err)

		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.Len(t, u.Profile, 2)
		assert.JSONEq(t, `"dark"`, string(u.Profile["theme"]))
	})

	t.Run("missing username is an error", func(t *testing.T) {
		var u UserRecord
		err := json.Unmarshal([]byte(`{"id":7}`), &u)
		require.Error(t, err)
	})

	t.Run("missing id is an error", func(t *testing.T) {
		var u UserRecord
		err := json.Unmarshal([]byte(`{"username":"alice"}`), &u)
		require.Error(t, err)
	})
}

func TestRawImage_Project(t *testing.T) {
	tests := []struct {
		name string
		in   RawImage
		want ImageResult
	}{
		{
			name: "thumbnail preferred over url",
			in:   RawImage{Thumbnail: "a_thumb.jpg", URL: "a.jpg", Title: "A"},
			want: ImageResult{URL: "a_thumb.jpg", Title: "A"},
		},
		{
			name: "url fallback",
			in:   RawImage{URL: "b.jpg", Title: "B"},
			want: ImageResult{URL: "b.jpg", Title: "B"},
		},
		{
			name: "missing title",
			in:   RawImage{Thumbnail: "c_thumb.jpg"},
			want: ImageResult{URL: "c_thumb.jpg", Title: "Untitled Image"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Project())
		})
	}
}
