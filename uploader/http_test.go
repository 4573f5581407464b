package uploader

import (
	"Inkpix/service"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTP_JSONResponse(t *testing.T) {
	var gotContentType, gotOrigin string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotOrigin = r.Header.Get("X-Origin-Src")
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(`{"src":"https://cdn/u.png","image_id":42}`))
	}))
	defer srv.Close()

	u := NewHTTP(srv.URL)
	res, err := u.Upload(context.Background(), service.Payload{
		Data:     []byte("bytes"),
		Filename: "a.png",
		Src:      "blob:orig",
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn/u.png", res.Src)
	require.EqualValues(t, 42, res.Extra["image_id"])
	require.Contains(t, gotContentType, "multipart/form-data")
	require.Equal(t, "blob:orig", gotOrigin)
}

// 响应体是裸地址时整体当作 src
func TestHTTP_BareStringResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("https://cdn/bare.png\n"))
	}))
	defer srv.Close()

	u := NewHTTP(srv.URL)
	res, err := u.Upload(context.Background(), service.Payload{Data: []byte("bytes")})
	require.NoError(t, err)
	require.Equal(t, "https://cdn/bare.png", res.Src)
}

// 没有文件名走裸二进制，不包 multipart
func TestHTTP_BlobBody(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"url":"https://cdn/u2.png"}`))
	}))
	defer srv.Close()

	u := NewHTTP(srv.URL)
	res, err := u.Upload(context.Background(), service.Payload{
		Data:        []byte{1, 2, 3},
		ContentType: "image/png",
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn/u2.png", res.Src)
	require.Equal(t, "image/png", gotContentType)
	require.Equal(t, []byte{1, 2, 3}, gotBody)
}

func TestHTTP_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	u := NewHTTP(srv.URL)
	_, err := u.Upload(context.Background(), service.Payload{Data: []byte("x")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}
