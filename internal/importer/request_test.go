package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/roomfit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRequest = `{
  "boundary": [[0, 0], [1000, 0], [1000, 1000], [0, 1000], [0, 0]],
  "door": [[0, 400], [0, 600]],
  "isOpenInward": false,
  "algoToPlace": {
    "shelf-1": [400, 200],
    "fridge": [1220, 1330]
  }
}`

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(sampleRequest))
	require.NoError(t, err)

	assert.Len(t, req.Boundary, 5, "closing vertex is kept; the polygon drops it")
	assert.Equal(t, model.Point{X: 0, Y: 400}, req.Door.A)
	assert.Equal(t, model.Point{X: 0, Y: 600}, req.Door.B)
	assert.False(t, req.Door.OpenInward)
	assert.Equal(t, []model.Item{
		{Name: "fridge", Length: 1220, Width: 1330},
		{Name: "shelf-1", Length: 400, Width: 200},
	}, req.Items, "items are ordered by name")
}

func TestDecodeRequest_InwardDefaultsFalse(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{"boundary":[[0,0],[10,0],[10,10]],"door":[[5,0],[8,0]]}`))
	require.NoError(t, err)
	assert.False(t, req.Door.OpenInward)
	assert.Empty(t, req.Items)
}

func TestDecodeRequest_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"boundary": [`},
		{"no boundary", `{"door": [[0,400],[0,600]]}`},
		{"short vertex", `{"boundary": [[0,0],[1000],[1000,1000]], "door": [[0,400],[0,600]]}`},
		{"one door point", `{"boundary": [[0,0],[1000,0],[1000,1000]], "door": [[0,400]]}`},
		{"bad door point", `{"boundary": [[0,0],[1000,0],[1000,1000]], "door": [[0,400],[0,600,1]]}`},
		{"bad item", `{"boundary": [[0,0],[1000,0],[1000,1000]], "door": [[0,400],[0,600]], "algoToPlace": {"x": [1,2,3]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRequest))
		})
	}
}

func TestEncodeRequest_ReadsBack(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(sampleRequest))
	require.NoError(t, err)
	req.Door.OpenInward = true

	var buf bytes.Buffer
	require.NoError(t, EncodeRequest(&buf, req))
	assert.Contains(t, buf.String(), `"isOpenInward": true`)

	back, err := DecodeRequest(&buf)
	require.NoError(t, err)
	assert.Equal(t, req, back)
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example1.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleRequest), 0644))

	req, err := LoadRequest(path)
	require.NoError(t, err)
	assert.Len(t, req.Items, 2)

	_, err = LoadRequest(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
