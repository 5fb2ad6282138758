package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/mocks"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 1 << 20

type multipartImage struct {
	filename    string
	contentType string
	data        []byte
}

// newMultipartRequest builds a multipart POST with the given text fields and
// optional image part.
func newMultipartRequest(t *testing.T, target string, fields map[string]string, image *multipartImage) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="image"; filename="` + image.filename + `"`}
		h["Content-Type"] = []string{image.contentType}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(image.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// newTestHandler wires a real pipeline to mock model boundaries.
func newTestHandler(
	t *testing.T,
	extractor *mocks.MockTextExtractor,
	synthesizer *mocks.MockCardSynthesizer,
) *GenerationHandler {
	t.Helper()
	l, _ := logger.NewTestLogger()
	p, err := generation.NewPipeline(extractor, synthesizer, generation.PipelineConfig{MaxTextLength: 1000}, l)
	require.NoError(t, err)
	return NewGenerationHandler(p, testMaxUpload, l)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeCards(t *testing.T, w *httptest.ResponseRecorder) CardsResponse {
	t.Helper()
	var resp CardsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
