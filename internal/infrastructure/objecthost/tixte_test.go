package objecthost

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/config"
)

func newTestTixteHost(serverURL string) *TixteHost {
	return NewTixteHost(config.TixteConfig{
		APIKey:   "test-api-key",
		Domain:   "cdn.example.com",
		Endpoint: serverURL,
	})
}

func TestTixteHost_Upload(t *testing.T) {
	var gotAuth string
	var gotPayload tixtePayload
	var gotFile string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(32<<20))
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("payload_json")), &gotPayload))

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		gotFile = string(data)
		assert.Equal(t, "song.mp3", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"direct_url":"https://cdn.example.com/song.mp3","deletion_url":"https://tixte.example/d/abc","size":9}}`))
	}))
	defer server.Close()

	host := newTestTixteHost(server.URL)

	result, err := host.Upload(context.Background(), strings.NewReader("AAABBBCCC"), "song.mp3")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/song.mp3", result.DirectURL)
	assert.Equal(t, "https://tixte.example/d/abc", result.DeletionURL)
	assert.Equal(t, int64(9), result.Size)

	assert.Equal(t, "test-api-key", gotAuth)
	assert.Equal(t, "cdn.example.com", gotPayload.Domain)
	assert.Equal(t, "song.mp3", gotPayload.Name)
	assert.Equal(t, "AAABBBCCC", gotFile)
}

func TestTixteHost_UploadErrorMessagePassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"message":"File type not allowed"}}`))
	}))
	defer server.Close()

	host := newTestTixteHost(server.URL)

	_, err := host.Upload(context.Background(), strings.NewReader("x"), "song.mp3")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeUpstreamError, appErr.Code)
	assert.Equal(t, "File type not allowed", appErr.Message)
}

func TestTixteHost_UploadNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream gateway timeout"))
	}))
	defer server.Close()

	host := newTestTixteHost(server.URL)

	_, err := host.Upload(context.Background(), strings.NewReader("x"), "song.mp3")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "upstream gateway timeout", appErr.Message)
}

func TestTixteHost_UploadSuccessFalse(t *testing.T) {
	// 2xxでもsuccess:falseなら失敗として扱う
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error":{"message":"Quota exceeded"}}`))
	}))
	defer server.Close()

	host := newTestTixteHost(server.URL)

	_, err := host.Upload(context.Background(), strings.NewReader("x"), "song.mp3")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Quota exceeded", appErr.Message)
}

func TestTixteHost_UploadMissingDirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	host := newTestTixteHost(server.URL)

	_, err := host.Upload(context.Background(), strings.NewReader("x"), "song.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "direct_url")
}

func TestTixteHost_UploadUnreachable(t *testing.T) {
	host := newTestTixteHost("http://127.0.0.1:1")

	_, err := host.Upload(context.Background(), strings.NewReader("x"), "song.mp3")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeUpstreamError, appErr.Code)
}

func TestTixteHost_StreamRequestBody(t *testing.T) {
	host := newTestTixteHost("http://example.invalid")
	payload := []byte(`{"domain":"cdn.example.com","name":"song.mp3"}`)

	// パイプから読み進めながらmultipartとして復元できること
	body, contentType := host.streamRequestBody(payload, strings.NewReader("chunked-bytes"), "song.mp3")

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	mr := multipart.NewReader(body, params["boundary"])

	part, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "payload_json", part.FormName())
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(data))

	part, err = mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "song.mp3", part.FileName())
	data, err = io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "chunked-bytes", string(data))

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}
