// internal/app/features/assignusers/request.go
package assignusers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/domain/models"
)

// controlFields steer the request and are never stored on the record.
var controlFields = map[string]bool{
	"authenticatedUserEmail": true,
	"isClicked":              true,
	"file":                   true,
}

func storableField(name string) bool {
	return !controlFields[name] && models.IsExtraField(name)
}

// postRequest is POST /assignUsers after decoding, independent of whether it
// arrived as multipart or JSON.
type postRequest struct {
	Owner   string
	Single  SingleInput
	Clicked []byte
	File    []byte
}

func (p postRequest) singleMode() bool {
	s := p.Single
	return s.Name != "" && s.Email != "" && s.Skills != "" && s.Group != ""
}

func (p postRequest) bulkMode() bool {
	c := string(bytes.TrimSpace(p.Clicked))
	return len(p.File) > 0 && c != "" && c != "null" && c != `""`
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// decodePost reads the request body. The spreadsheet travels in the "file"
// part of a multipart form; single-record requests may use either encoding.
func decodePost(w http.ResponseWriter, r *http.Request, maxUpload int64) (postRequest, *apierr.Error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if isMultipart(r) {
		return decodeMultipart(r, maxUpload)
	}
	return decodeJSON(r)
}

func decodeMultipart(r *http.Request, maxUpload int64) (postRequest, *apierr.Error) {
	var p postRequest
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return p, apierr.Validation("Upload exceeds the size limit")
		}
		return p, apierr.Validation("Invalid multipart form")
	}

	p.Owner = r.FormValue("authenticatedUserEmail")
	p.Single = SingleInput{
		Name:   r.FormValue("auName"),
		Email:  r.FormValue("auEmail"),
		Group:  r.FormValue("auGroup"),
		Skills: r.FormValue("auSkills"),
	}
	p.Clicked = []byte(r.FormValue("isClicked"))
	for k, vs := range r.MultipartForm.Value {
		if storableField(k) && len(vs) > 0 {
			p.Single.setExtra(k, vs[0])
		}
	}

	file, _, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return p, nil
	case err != nil:
		return p, apierr.Validation("Invalid file upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return p, apierr.Validation("Invalid file upload")
	}
	p.File = data
	return p, nil
}

func decodeJSON(r *http.Request) (postRequest, *apierr.Error) {
	var p postRequest
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return p, apierr.Validation("Upload exceeds the size limit")
		}
		return p, apierr.Validation("Invalid JSON body")
	}

	p.Owner = jsonString(body["authenticatedUserEmail"])
	p.Single = SingleInput{
		Name:   jsonString(body["auName"]),
		Email:  jsonString(body["auEmail"]),
		Group:  jsonString(body["auGroup"]),
		Skills: jsonSkills(body["auSkills"]),
	}
	p.Clicked = body["isClicked"]
	for k, raw := range body {
		if !storableField(k) {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil || v == nil {
			continue
		}
		p.Single.setExtra(k, v)
	}
	return p, nil
}

func (s *SingleInput) setExtra(k string, v any) {
	if s.Extra == nil {
		s.Extra = map[string]any{}
	}
	s.Extra[k] = v
}

// jsonString returns raw as a string when it holds a JSON string, and ""
// otherwise.
func jsonString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// jsonSkills accepts auSkills as the usual comma-separated string or as an
// array of names.
func jsonSkills(raw json.RawMessage) string {
	if s := jsonString(raw); s != "" {
		return s
	}
	var list []string
	if len(raw) == 0 || json.Unmarshal(raw, &list) != nil {
		return ""
	}
	return strings.Join(list, ",")
}
