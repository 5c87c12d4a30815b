package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUploadURLRequiresFields(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	for _, body := range []string{`{}`, `{"fileName":"donut.png"}`, `{"fileType":"image/png"}`, ""} {
		resp, err := api.GetUploadURL(ctx, request(http.MethodPost, body, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "fileName and fileType are required", decodeObject(t, resp.Body)["error"])
	}
}

func TestGetUploadURLAllowList(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	resp, err := api.GetUploadURL(ctx, request(http.MethodPost,
		`{"fileName":"menu.pdf","fileType":"application/pdf"}`, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid file type. Only images are allowed.", decodeObject(t, resp.Body)["error"])
}

func TestGetUploadURL(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI()

	resp, err := api.GetUploadURL(ctx, request(http.MethodPost,
		`{"fileName":"donut.png","fileType":"image/png"}`, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeObject(t, resp.Body)
	key, _ := body["key"].(string)
	uploadURL, _ := body["uploadUrl"].(string)
	imageURL, _ := body["imageUrl"].(string)

	assert.True(t, strings.HasPrefix(key, "menu-items/"))
	assert.True(t, strings.HasSuffix(key, "-donut.png"))
	assert.NotEmpty(t, uploadURL)
	assert.Equal(t, "https://"+testCDNDomain+"/"+key, imageURL)
}
